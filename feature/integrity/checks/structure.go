package checks

import (
	"context"
	"errors"
	"fmt"

	"bucket-manager/core/backend"

	"go.uber.org/zap"
)

// CheckIndexPool reports whether the bucket-index pool exists.
func CheckIndexPool(ctx context.Context, b backend.Backend, indexPool string) (bool, error) {
	exists, err := b.PoolExists(ctx, indexPool)
	if err != nil {
		return false, fmt.Errorf("failed to check index pool %s: %w", indexPool, err)
	}
	return exists, nil
}

// FixIndexPool creates the bucket-index pool as a system bucket. A pool
// created concurrently is not an error.
func FixIndexPool(ctx context.Context, b backend.Backend, indexPool, owner string, logger *zap.Logger) error {
	bucket := &backend.Bucket{Name: indexPool, Pool: indexPool}
	err := b.CreateBucket(ctx, owner, bucket, nil, backend.CreateOptions{System: true})
	if err != nil && !errors.Is(err, backend.ErrAlreadyExists) {
		logger.Error("Failed to create index pool", zap.String("pool", indexPool), zap.Error(err))
		return err
	}
	logger.Info("Created index pool", zap.String("pool", indexPool))
	return nil
}
