// Package catalog persists the bucket catalog with GORM.
//
// The catalog is where bucket ids come from (the auto-increment primary key)
// and where exclusivity is enforced: the unique index on the bucket name turns
// concurrent exclusive creations of one name into exactly one winner and
// backend.ErrAlreadyExists for everyone else.
//
// Soft deleted rows keep the name reserved. Purging drops the row.
//
// Errors are tagged with the Error class; backend sentinels stay reachable
// through errors.Is.
package catalog
