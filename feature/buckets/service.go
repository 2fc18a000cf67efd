package buckets

import (
	"context"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"
	"bucket-manager/feature/buckets/models"
	"bucket-manager/feature/pools"

	"go.uber.org/zap"
)

// Service exposes bucket record persistence and bucket creation.
type Service struct {
	store   *InfoStore
	creator *Creator
	logger  *zap.Logger
}

// NewService creates a bucket service on top of the pool service.
func NewService(b backend.Backend, poolSvc *pools.Service, cfg pools.Config, logger *zap.Logger, m *metrics.Metrics) *Service {
	store := NewInfoStore(b, cfg.IndexPool, logger)
	return &Service{
		store:   store,
		creator: NewCreator(b, poolSvc.Allocator(), poolSvc.Registry(), store, logger, m),
		logger:  logger,
	}
}

// StoreBucketInfo persists a bucket record.
func (s *Service) StoreBucketInfo(ctx context.Context, info models.BucketInfo) error {
	return s.store.Store(ctx, info)
}

// GetBucketInfo returns the record of name, or the default record when none
// was stored.
func (s *Service) GetBucketInfo(ctx context.Context, name string) (models.BucketInfo, error) {
	return s.store.Load(ctx, name)
}

// GetBucketInfoByID returns the record stored under the id alias.
func (s *Service) GetBucketInfoByID(ctx context.Context, id uint64) (models.BucketInfo, error) {
	return s.store.LoadByID(ctx, id)
}

// CreateBucket creates a bucket; see Creator.Create.
func (s *Service) CreateBucket(ctx context.Context, owner, name string, attrs map[string][]byte, exclusive bool, defaultAUID uint64) (backend.Bucket, error) {
	return s.creator.Create(ctx, owner, name, attrs, exclusive, defaultAUID)
}
