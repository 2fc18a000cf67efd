package buckets

import (
	"context"
	"errors"
	"fmt"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"
	"bucket-manager/feature/buckets/models"
	"bucket-manager/feature/pools"

	"go.uber.org/zap"
)

// Bucket creation results recorded in metrics.
const (
	resultCreated  = "created"
	resultSystem   = "system"
	resultConflict = "conflict"
	resultFailed   = "failed"
)

// Creator creates buckets end to end.
type Creator struct {
	backend   backend.Backend
	allocator *pools.Allocator
	registry  *pools.Registry
	store     *InfoStore
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewCreator creates a Creator.
func NewCreator(b backend.Backend, allocator *pools.Allocator, registry *pools.Registry, store *InfoStore, logger *zap.Logger, m *metrics.Metrics) *Creator {
	return &Creator{
		backend:   b,
		allocator: allocator,
		registry:  registry,
		store:     store,
		logger:    logger,
		metrics:   m,
	}
}

// Create creates the bucket name for owner.
//
// System buckets are their own pool and go straight to the backend. Tenant
// buckets get a pool from the allocator, are created in the backend, and
// have their record persisted. An exclusive conflict returns the pool to the
// registry; a persistence failure deletes the new bucket. In both cases the
// caller sees the original error.
func (c *Creator) Create(ctx context.Context, owner, name string, attrs map[string][]byte, exclusive bool, defaultAUID uint64) (backend.Bucket, error) {
	if backend.IsSystemBucket(name) {
		bucket := backend.Bucket{Name: name, Pool: name}
		err := c.backend.CreateBucket(ctx, owner, &bucket, attrs, backend.CreateOptions{
			System:    true,
			Exclusive: exclusive,
			AUID:      defaultAUID,
		})
		c.record(err, resultSystem)
		return bucket, err
	}

	bucket, err := c.allocator.Allocate(ctx, name)
	if err != nil {
		c.metrics.BucketCreated(resultFailed)
		return backend.Bucket{}, fmt.Errorf("failed to allocate pool for %s: %w", name, err)
	}

	err = c.backend.CreateBucket(ctx, owner, &bucket, attrs, backend.CreateOptions{
		PoolBacked: true,
		Exclusive:  exclusive,
		AUID:       defaultAUID,
	})
	if errors.Is(err, backend.ErrAlreadyExists) {
		c.compensate(ctx, "withdraw_pool", func(ctx context.Context) error {
			return c.registry.Withdraw(ctx, bucket.Pool)
		}, zap.String("bucket", name), zap.String("pool", bucket.Pool))
		c.metrics.BucketCreated(resultConflict)
		return backend.Bucket{}, err
	}
	if err != nil {
		// The pool stays out of the registry; its backend state is unknown.
		c.metrics.BucketCreated(resultFailed)
		return backend.Bucket{}, err
	}

	info := models.BucketInfo{Bucket: bucket, Owner: owner}
	if err := c.store.Store(ctx, info); err != nil {
		c.logger.Error("Failed to store bucket info, removing bucket",
			zap.String("bucket", name), zap.Error(err))
		c.compensate(ctx, "delete_bucket", func(ctx context.Context) error {
			return c.backend.DeleteBucket(ctx, owner, bucket, true)
		}, zap.String("bucket", name), zap.String("pool", bucket.Pool))
		c.metrics.BucketCreated(resultFailed)
		return backend.Bucket{}, err
	}

	c.logger.Info("Bucket created",
		zap.String("bucket", bucket.Name),
		zap.String("pool", bucket.Pool),
		zap.Uint64("bucket_id", bucket.BucketID),
		zap.String("owner", owner))
	c.metrics.BucketCreated(resultCreated)
	return bucket, nil
}

// compensate runs a best-effort undo step. Its failure is logged and
// counted, never returned. The step runs even if ctx was canceled.
func (c *Creator) compensate(ctx context.Context, kind string, fn func(context.Context) error, fields ...zap.Field) {
	err := fn(context.WithoutCancel(ctx))
	c.metrics.Compensated(kind, err)
	if err != nil {
		c.logger.Error("Compensating action failed",
			append(fields, zap.String("action", kind), zap.Error(err))...)
	}
}

func (c *Creator) record(err error, success string) {
	switch {
	case err == nil:
		c.metrics.BucketCreated(success)
	case errors.Is(err, backend.ErrAlreadyExists):
		c.metrics.BucketCreated(resultConflict)
	default:
		c.metrics.BucketCreated(resultFailed)
	}
}
