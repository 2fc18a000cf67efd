package backend

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound reports an absent object, document or pool.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports an exclusive creation conflict.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCorrupt reports a persisted payload that could not be decoded.
	ErrCorrupt = errors.New("corrupt payload")
)

// SystemMarker prefixes the names of system buckets.
const SystemMarker = "."

// IsSystemBucket reports whether name denotes a bookkeeping bucket that is
// its own pool.
func IsSystemBucket(name string) bool {
	return strings.HasPrefix(name, SystemMarker)
}

// Bucket binds a tenant visible name to the pool backing it.
type Bucket struct {
	Name     string `json:"name"`
	Pool     string `json:"pool"`
	BucketID uint64 `json:"bucket_id"`
}

// ObjectRef addresses one object inside a pool.
type ObjectRef struct {
	Pool string
	Key  string
}

// CreateOptions are the flags of a bucket creation request.
type CreateOptions struct {
	System     bool
	PoolBacked bool
	Exclusive  bool
	AUID       uint64
}

// Backend is the storage service contract this module consumes.
type Backend interface {
	// CreatePools creates every named pool. The slice holds one result per
	// name in order; the error reports a failure of the whole request.
	CreatePools(ctx context.Context, owner string, names []string) ([]error, error)
	// CreateBucket creates the bucket and fills in its BucketID.
	CreateBucket(ctx context.Context, owner string, bucket *Bucket, attrs map[string][]byte, opts CreateOptions) error
	// DeleteBucket removes the bucket, permanently when purge is set.
	DeleteBucket(ctx context.Context, owner string, bucket Bucket, purge bool) error

	GetObject(ctx context.Context, pool, key string) ([]byte, error)
	PutObject(ctx context.Context, pool, key string, data []byte) error

	// DocGet reads a shared key/payload document.
	DocGet(ctx context.Context, ref ObjectRef) ([]byte, map[string][]byte, error)
	// DocSet writes every entry in one request.
	DocSet(ctx context.Context, ref ObjectRef, entries map[string][]byte) error
	// DocSetKey writes a single entry.
	DocSetKey(ctx context.Context, ref ObjectRef, key string, value []byte) error
	// DocRemoveKeys deletes entries outright.
	DocRemoveKeys(ctx context.Context, ref ObjectRef, keys ...string) error

	// PoolExists reports whether the pool is realized in storage.
	PoolExists(ctx context.Context, pool string) (bool, error)
	// BoundPools returns the subset of pools currently backing a bucket.
	BoundPools(ctx context.Context, pools []string) (map[string]string, error)
}
