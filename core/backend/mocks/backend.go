package mocks

import (
	"context"

	"bucket-manager/core/backend"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of backend.Backend
type Backend struct {
	mock.Mock
}

func (m *Backend) CreatePools(ctx context.Context, owner string, names []string) ([]error, error) {
	args := m.Called(ctx, owner, names)
	results, _ := args.Get(0).([]error)
	return results, args.Error(1)
}

func (m *Backend) CreateBucket(ctx context.Context, owner string, bucket *backend.Bucket, attrs map[string][]byte, opts backend.CreateOptions) error {
	args := m.Called(ctx, owner, bucket, attrs, opts)
	return args.Error(0)
}

func (m *Backend) DeleteBucket(ctx context.Context, owner string, bucket backend.Bucket, purge bool) error {
	args := m.Called(ctx, owner, bucket, purge)
	return args.Error(0)
}

func (m *Backend) GetObject(ctx context.Context, pool, key string) ([]byte, error) {
	args := m.Called(ctx, pool, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *Backend) PutObject(ctx context.Context, pool, key string, data []byte) error {
	args := m.Called(ctx, pool, key, data)
	return args.Error(0)
}

func (m *Backend) DocGet(ctx context.Context, ref backend.ObjectRef) ([]byte, map[string][]byte, error) {
	args := m.Called(ctx, ref)
	header, _ := args.Get(0).([]byte)
	entries, _ := args.Get(1).(map[string][]byte)
	return header, entries, args.Error(2)
}

func (m *Backend) DocSet(ctx context.Context, ref backend.ObjectRef, entries map[string][]byte) error {
	args := m.Called(ctx, ref, entries)
	return args.Error(0)
}

func (m *Backend) DocSetKey(ctx context.Context, ref backend.ObjectRef, key string, value []byte) error {
	args := m.Called(ctx, ref, key, value)
	return args.Error(0)
}

func (m *Backend) DocRemoveKeys(ctx context.Context, ref backend.ObjectRef, keys ...string) error {
	args := m.Called(ctx, ref, keys)
	return args.Error(0)
}

func (m *Backend) PoolExists(ctx context.Context, pool string) (bool, error) {
	args := m.Called(ctx, pool)
	return args.Bool(0), args.Error(1)
}

func (m *Backend) BoundPools(ctx context.Context, pools []string) (map[string]string, error) {
	args := m.Called(ctx, pools)
	bound, _ := args.Get(0).(map[string]string)
	return bound, args.Error(1)
}
