package integrity

import (
	"context"

	"bucket-manager/core/backend"
	"bucket-manager/feature/integrity/checks"
	"bucket-manager/feature/pools"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	backend backend.Backend
	cfg     pools.Config
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. db may be nil, in which case
// the schema check reports an error.
func NewService(b backend.Backend, cfg pools.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		backend: b,
		cfg:     cfg,
		db:      db,
		logger:  logger,
	}
}

// CheckIndexPool reports whether the bucket-index pool exists.
func (s *Service) CheckIndexPool(ctx context.Context) (bool, error) {
	return checks.CheckIndexPool(ctx, s.backend, s.cfg.IndexPool)
}

// FixIndexPool creates the bucket-index pool.
func (s *Service) FixIndexPool(ctx context.Context) error {
	return checks.FixIndexPool(ctx, s.backend, s.cfg.IndexPool, s.cfg.Owner, s.logger)
}

// CheckRegistry reads the available-pool document.
func (s *Service) CheckRegistry(ctx context.Context) (*checks.RegistryReport, error) {
	return checks.CheckRegistry(ctx, s.backend, s.cfg.AvailRef())
}

// CheckSchema verifies the catalog table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckCatalogSchema(s.db)
}
