package pools

import (
	"context"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"
	"bucket-manager/core/random"
	"bucket-manager/core/reconcile"

	"go.uber.org/zap"
)

// Service wires the pool components over one backend.
type Service struct {
	registry   *Registry
	prealloc   *Preallocator
	allocator  *Allocator
	maintainer *Maintainer
	auditor    *Auditor
	cfg        Config
	logger     *zap.Logger
}

// NewService creates the pool components. A nil src uses the default
// cryptographic source.
func NewService(b backend.Backend, cfg Config, src random.Source, logger *zap.Logger, m *metrics.Metrics) *Service {
	registry := NewRegistry(b, cfg, logger, m)
	prealloc := NewPreallocator(b, cfg, src, logger, m)
	return &Service{
		registry:   registry,
		prealloc:   prealloc,
		allocator:  NewAllocator(registry, prealloc, cfg, src, logger, m),
		maintainer: NewMaintainer(registry, prealloc, cfg, logger),
		auditor:    NewAuditor(registry, b, cfg, logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// Allocator returns the allocator used by bucket creation.
func (s *Service) Allocator() *Allocator {
	return s.allocator
}

// Registry returns the available-pool registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// MaintainPools runs one maintenance pass.
func (s *Service) MaintainPools(ctx context.Context) (MaintainResult, error) {
	return s.maintainer.RunOnce(ctx)
}

// RunMaintainer maintains the registry on the configured interval until ctx
// is done.
func (s *Service) RunMaintainer(ctx context.Context) {
	interval := s.cfg.MaintainInterval()
	if interval <= 0 {
		s.logger.Info("Pool maintainer disabled")
		return
	}
	s.logger.Info("Pool maintainer started", zap.Duration("interval", interval))
	s.maintainer.Run(ctx, interval)
}

// ListAvailable returns the registered pool names in order.
func (s *Service) ListAvailable(ctx context.Context) ([]string, error) {
	return s.registry.List(ctx)
}

// Audit reconciles the registry against storage and the catalog.
func (s *Service) Audit(ctx context.Context, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	return s.auditor.Audit(ctx, opts)
}
