package pools

import (
	"context"
	"fmt"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"
	"bucket-manager/core/random"

	"go.uber.org/zap"
)

// Allocator picks the pool backing a new bucket.
type Allocator struct {
	registry *Registry
	prealloc *Preallocator
	cfg      Config
	src      random.Source
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewAllocator creates an Allocator. A nil src uses the default
// cryptographic source.
func NewAllocator(registry *Registry, prealloc *Preallocator, cfg Config, src random.Source, logger *zap.Logger, m *metrics.Metrics) *Allocator {
	return &Allocator{
		registry: registry,
		prealloc: prealloc,
		cfg:      cfg,
		src:      src,
		logger:   logger,
		metrics:  m,
	}
}

// Allocate binds bucketName to a pool drawn uniformly at random from the
// registry, or to a freshly generated one when the registry is empty.
//
// The chosen pool is not removed from the registry. Two concurrent calls can
// pick the same pool; only exclusive bucket creation downstream detects it.
func (a *Allocator) Allocate(ctx context.Context, bucketName string) (backend.Bucket, error) {
	_, entries, err := a.registry.Snapshot(ctx)
	if err != nil {
		return backend.Bucket{}, err
	}
	if len(entries) == 0 {
		return a.generatePool(ctx, bucketName)
	}

	available := sortedKeys(entries)
	i, err := random.Index(a.src, len(available))
	if err != nil {
		return backend.Bucket{}, fmt.Errorf("failed to pick pool: %w", err)
	}

	a.metrics.Allocated(metrics.SourceRegistry)
	return backend.Bucket{Name: bucketName, Pool: available[i]}, nil
}

// generatePool creates a full batch, binds the last pool to bucketName and
// publishes the rest.
func (a *Allocator) generatePool(ctx context.Context, bucketName string) (backend.Bucket, error) {
	created, err := a.prealloc.Generate(ctx, a.cfg.PreallocateMax)
	if err != nil {
		return backend.Bucket{}, fmt.Errorf("failed to generate pool for %s: %w", bucketName, err)
	}

	last := len(created) - 1
	bucket := backend.Bucket{Name: bucketName, Pool: created[last]}

	if last == 0 {
		// Nothing to publish, but bucket records and later withdrawals
		// still need the registry pool.
		if err := a.registry.EnsurePool(ctx); err != nil {
			return backend.Bucket{}, err
		}
	} else if err := a.registry.Publish(ctx, created[:last]); err != nil {
		return backend.Bucket{}, err
	}

	a.logger.Info("Registry empty, generated pools",
		zap.String("bucket", bucketName),
		zap.String("pool", bucket.Pool),
		zap.Int("published", last))
	a.metrics.Allocated(metrics.SourceFallback)
	return bucket, nil
}
