// Package models holds the persisted bucket record and its msgpack codec.
//
// The encoding is a versioned map. Readers skip fields they do not know.
package models
