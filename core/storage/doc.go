// Package storage provides an abstraction layer for the object storage service
// that physically realizes pools.
//
// It wraps the MinIO Go client. Every pool handed out by the allocator is one
// S3 bucket; bucket-info records and other bookkeeping objects are plain
// objects inside the bucket-index pool.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Naming
//
// PoolBucket maps a logical pool name onto a valid S3 bucket name under the
// configured namespace. System pools get their own prefix, so ".rgw.buckets"
// becomes "rgw-sys-rgw-buckets" while "p4k2m9x0q" becomes "rgw-p4k2m9x0q".
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, storage.PoolBucket("rgw", ".rgw.buckets"))
package storage
