// Package backendtest provides an in-memory backend.Backend for tests.
package backendtest

import (
	"context"
	"fmt"
	"sync"

	"bucket-manager/core/backend"
)

type bucketEntry struct {
	bucket  backend.Bucket
	owner   string
	system  bool
	deleted bool
}

type document struct {
	header  []byte
	entries map[string][]byte
}

// Memory keeps pools, buckets, objects and documents in maps. The exported
// hook fields inject failures; they are read under the lock.
type Memory struct {
	mu sync.Mutex

	pools   map[string]bool
	buckets map[string]*bucketEntry
	objects map[backend.ObjectRef][]byte
	docs    map[backend.ObjectRef]*document
	nextID  uint64

	// PoolErrors fails creation of the named pools.
	PoolErrors map[string]error
	// CreatePoolsErr fails the whole batch request.
	CreatePoolsErr error
	// CreateBucketErr fails every tenant bucket creation.
	CreateBucketErr error
	// DeleteBucketErr fails every bucket deletion.
	DeleteBucketErr error
	// PutObjectErr fails writes of the listed keys.
	PutObjectErr map[string]error
	// GetObjectErr fails every object read.
	GetObjectErr error
	// DocGetErr fails every document read.
	DocGetErr error
	// DocSetErr fails every document write.
	DocSetErr error

	// Counters for assertions.
	CreatePoolsCalls  int
	CreateBucketCalls int
	Deleted           []string
}

var _ backend.Backend = (*Memory)(nil)

// NewMemory returns an empty backend.
func NewMemory() *Memory {
	return &Memory{
		pools:   make(map[string]bool),
		buckets: make(map[string]*bucketEntry),
		objects: make(map[backend.ObjectRef][]byte),
		docs:    make(map[backend.ObjectRef]*document),
	}
}

// CreatePools creates each name that does not exist yet.
func (m *Memory) CreatePools(_ context.Context, _ string, names []string) ([]error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreatePoolsCalls++
	if m.CreatePoolsErr != nil {
		return nil, m.CreatePoolsErr
	}

	results := make([]error, len(names))
	for i, name := range names {
		switch {
		case m.PoolErrors[name] != nil:
			results[i] = m.PoolErrors[name]
		case m.pools[name]:
			results[i] = fmt.Errorf("pool %s: %w", name, backend.ErrAlreadyExists)
		default:
			m.pools[name] = true
		}
	}
	return results, nil
}

// CreateBucket links a bucket to its pool, adding the pool for system buckets.
func (m *Memory) CreateBucket(_ context.Context, owner string, bucket *backend.Bucket, _ map[string][]byte, opts backend.CreateOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateBucketCalls++
	if opts.System {
		m.pools[bucket.Pool] = true
	} else if m.CreateBucketErr != nil {
		return m.CreateBucketErr
	}

	if opts.PoolBacked && !m.pools[bucket.Pool] {
		return fmt.Errorf("pool %s: %w", bucket.Pool, backend.ErrNotFound)
	}

	if existing, ok := m.buckets[bucket.Name]; ok {
		if opts.Exclusive || existing.deleted {
			return fmt.Errorf("bucket %s: %w", bucket.Name, backend.ErrAlreadyExists)
		}
		bucket.BucketID = existing.bucket.BucketID
		return nil
	}

	m.nextID++
	bucket.BucketID = m.nextID
	m.buckets[bucket.Name] = &bucketEntry{bucket: *bucket, owner: owner, system: opts.System}
	return nil
}

// DeleteBucket marks a bucket deleted, or forgets it entirely when purge is set.
func (m *Memory) DeleteBucket(_ context.Context, _ string, bucket backend.Bucket, purge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteBucketErr != nil {
		return m.DeleteBucketErr
	}

	entry, ok := m.buckets[bucket.Name]
	if !ok || entry.deleted {
		return fmt.Errorf("bucket %s: %w", bucket.Name, backend.ErrNotFound)
	}
	if purge {
		delete(m.buckets, bucket.Name)
	} else {
		entry.deleted = true
	}
	m.Deleted = append(m.Deleted, bucket.Name)
	return nil
}

// GetObject returns a stored object or backend.ErrNotFound.
func (m *Memory) GetObject(_ context.Context, pool, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetObjectErr != nil {
		return nil, m.GetObjectErr
	}
	data, ok := m.objects[backend.ObjectRef{Pool: pool, Key: key}]
	if !ok {
		return nil, fmt.Errorf("object %s/%s: %w", pool, key, backend.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// PutObject stores data under pool and key.
func (m *Memory) PutObject(_ context.Context, pool, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.PutObjectErr[key]; err != nil {
		return err
	}
	m.objects[backend.ObjectRef{Pool: pool, Key: key}] = append([]byte(nil), data...)
	return nil
}

// DocGet returns a copy of a document.
func (m *Memory) DocGet(_ context.Context, ref backend.ObjectRef) ([]byte, map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DocGetErr != nil {
		return nil, nil, m.DocGetErr
	}
	doc, ok := m.docs[ref]
	if !ok {
		return nil, nil, fmt.Errorf("document %s/%s: %w", ref.Pool, ref.Key, backend.ErrNotFound)
	}

	entries := make(map[string][]byte, len(doc.entries))
	for k, v := range doc.entries {
		entries[k] = v
	}
	return doc.header, entries, nil
}

// DocSet merges entries into a document inside an existing pool.
func (m *Memory) DocSet(_ context.Context, ref backend.ObjectRef, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.writableDoc(ref)
	if err != nil {
		return err
	}
	for k, v := range entries {
		doc.entries[k] = v
	}
	return nil
}

// DocSetKey sets one key of a document inside an existing pool.
func (m *Memory) DocSetKey(_ context.Context, ref backend.ObjectRef, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.writableDoc(ref)
	if err != nil {
		return err
	}
	doc.entries[key] = value
	return nil
}

// DocRemoveKeys deletes keys from a document.
func (m *Memory) DocRemoveKeys(_ context.Context, ref backend.ObjectRef, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, ok := m.docs[ref]; ok {
		for _, k := range keys {
			delete(doc.entries, k)
		}
	}
	return nil
}

// PoolExists reports whether the pool was created.
func (m *Memory) PoolExists(_ context.Context, pool string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pools[pool], nil
}

// BoundPools maps each pool in pools that backs a live bucket to its name.
func (m *Memory) BoundPools(_ context.Context, pools []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bound := make(map[string]string)
	for _, entry := range m.buckets {
		if entry.deleted || entry.system {
			continue
		}
		for _, p := range pools {
			if entry.bucket.Pool == p {
				bound[p] = entry.bucket.Name
			}
		}
	}
	return bound, nil
}

// writableDoc must be called with the lock held.
func (m *Memory) writableDoc(ref backend.ObjectRef) (*document, error) {
	if m.DocSetErr != nil {
		return nil, m.DocSetErr
	}
	if !m.pools[ref.Pool] {
		return nil, fmt.Errorf("pool %s: %w", ref.Pool, backend.ErrNotFound)
	}
	doc, ok := m.docs[ref]
	if !ok {
		doc = &document{entries: make(map[string][]byte)}
		m.docs[ref] = doc
	}
	return doc, nil
}

// AddPools marks pools as existing.
func (m *Memory) AddPools(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range names {
		m.pools[n] = true
	}
}

// HasPool reports whether the pool exists.
func (m *Memory) HasPool(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pools[name]
}

// PoolCount returns the number of pools ever created.
func (m *Memory) PoolCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pools)
}

// Bucket returns the live bucket and its owner.
func (m *Memory) Bucket(name string) (backend.Bucket, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.buckets[name]
	if !ok || entry.deleted {
		return backend.Bucket{}, "", false
	}
	return entry.bucket, entry.owner, true
}

// Object returns a stored object.
func (m *Memory) Object(pool, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[backend.ObjectRef{Pool: pool, Key: key}]
	return data, ok
}
