package buckets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bucket-manager/core/backend"
	"bucket-manager/feature/buckets/models"

	"go.uber.org/zap"
)

// IDKey returns the alias key of a bucket id.
func IDKey(id uint64) string {
	return "." + strconv.FormatUint(id, 10)
}

// InfoStore persists bucket records in the bucket-index pool, once under the
// bucket name and once under its id alias.
type InfoStore struct {
	backend backend.Backend
	pool    string
	logger  *zap.Logger
}

// NewInfoStore creates an InfoStore over the given index pool.
func NewInfoStore(b backend.Backend, indexPool string, logger *zap.Logger) *InfoStore {
	return &InfoStore{backend: b, pool: indexPool, logger: logger}
}

// Store writes info under its name, then under its id alias. Only the first
// write's failure is returned; a failed alias write is logged.
func (s *InfoStore) Store(ctx context.Context, info models.BucketInfo) error {
	data, err := info.MarshalMsg(nil)
	if err != nil {
		return fmt.Errorf("failed to encode bucket info %s: %w", info.Bucket.Name, err)
	}

	if err := s.backend.PutObject(ctx, s.pool, info.Bucket.Name, data); err != nil {
		return fmt.Errorf("failed to store bucket info %s: %w", info.Bucket.Name, err)
	}

	alias := IDKey(info.Bucket.BucketID)
	if err := s.backend.PutObject(ctx, s.pool, alias, data); err != nil {
		s.logger.Warn("Failed to store bucket id alias",
			zap.String("bucket", info.Bucket.Name),
			zap.String("alias", alias),
			zap.Error(err))
	}

	s.logger.Debug("Stored bucket info",
		zap.String("bucket", info.Bucket.Name),
		zap.String("pool", info.Bucket.Pool),
		zap.String("owner", info.Owner))
	return nil
}

// Load reads the record stored under name. An absent record is not an
// error: the default record names name as its own pool.
func (s *InfoStore) Load(ctx context.Context, name string) (models.BucketInfo, error) {
	data, err := s.backend.GetObject(ctx, s.pool, name)
	if errors.Is(err, backend.ErrNotFound) {
		return models.BucketInfo{Bucket: backend.Bucket{Name: name, Pool: name}}, nil
	}
	if err != nil {
		return models.BucketInfo{}, fmt.Errorf("failed to load bucket info %s: %w", name, err)
	}

	var info models.BucketInfo
	if _, err := info.UnmarshalMsg(data); err != nil {
		s.logger.Error("Could not decode bucket info", zap.String("key", name), zap.Error(err))
		return models.BucketInfo{}, fmt.Errorf("bucket info %s: %w: %v", name, backend.ErrCorrupt, err)
	}

	s.logger.Debug("Loaded bucket info",
		zap.String("bucket", info.Bucket.Name),
		zap.String("owner", info.Owner))
	return info, nil
}

// LoadByID reads the record through its id alias.
func (s *InfoStore) LoadByID(ctx context.Context, id uint64) (models.BucketInfo, error) {
	return s.Load(ctx, IDKey(id))
}
