package docstore

import (
	"context"
	"errors"

	"bucket-manager/core/backend"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/errs"
)

// Error is the error class of document store failures.
var Error = errs.Class("docstore")

// Store keeps key/payload documents as Redis hashes. A document's header
// lives in a sibling string key. Every mutation is a single command, so
// concurrent writers never observe a partial update.
type Store struct {
	db     redis.UniversalClient
	prefix string
}

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, Error.New("ping failed: %v", err)
	}

	return New(client, cfg.KeyPrefix), nil
}

// New wraps an existing client.
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{db: client, prefix: prefix}
}

// Close releases the connection.
func (s *Store) Close() error {
	return Error.Wrap(s.db.Close())
}

// Key returns the Redis key of the document ref.
func (s *Store) Key(ref backend.ObjectRef) string {
	key := ref.Pool + "/" + ref.Key
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *Store) headerKey(ref backend.ObjectRef) string {
	return s.Key(ref) + ":header"
}

// Get returns the header and all entries of the document. A document with
// neither is reported as backend.ErrNotFound.
func (s *Store) Get(ctx context.Context, ref backend.ObjectRef) ([]byte, map[string][]byte, error) {
	var (
		fields *redis.MapStringStringCmd
		header *redis.StringCmd
	)
	_, err := s.db.Pipelined(ctx, func(p redis.Pipeliner) error {
		fields = p.HGetAll(ctx, s.Key(ref))
		header = p.Get(ctx, s.headerKey(ref))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, nil, Error.Wrap(err)
	}

	hdr, err := header.Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		hdr = nil
	case err != nil:
		return nil, nil, Error.Wrap(err)
	}

	entries := make(map[string][]byte, len(fields.Val()))
	for k, v := range fields.Val() {
		entries[k] = []byte(v)
	}

	if hdr == nil && len(entries) == 0 {
		return nil, nil, Error.Wrap(backend.ErrNotFound)
	}
	return hdr, entries, nil
}

// Set writes every entry in one HSET.
func (s *Store) Set(ctx context.Context, ref backend.ObjectRef, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	values := make(map[string]any, len(entries))
	for k, v := range entries {
		values[k] = v
	}
	return Error.Wrap(s.db.HSet(ctx, s.Key(ref), values).Err())
}

// SetKey writes a single entry.
func (s *Store) SetKey(ctx context.Context, ref backend.ObjectRef, key string, value []byte) error {
	return Error.Wrap(s.db.HSet(ctx, s.Key(ref), key, value).Err())
}

// SetHeader replaces the document header.
func (s *Store) SetHeader(ctx context.Context, ref backend.ObjectRef, header []byte) error {
	return Error.Wrap(s.db.Set(ctx, s.headerKey(ref), header, 0).Err())
}

// RemoveKeys deletes entries in one HDEL.
func (s *Store) RemoveKeys(ctx context.Context, ref backend.ObjectRef, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return Error.Wrap(s.db.HDel(ctx, s.Key(ref), keys...).Err())
}
