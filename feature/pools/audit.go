package pools

import (
	"context"
	"sync"

	"bucket-manager/core/backend"
	"bucket-manager/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// registryAdapter reconciles the registry against storage and the catalog.
type registryAdapter struct {
	registry    *Registry
	backend     backend.Backend
	concurrency int
}

var (
	_ reconcile.Adapter = (*registryAdapter)(nil)
	_ reconcile.Mutator = (*registryAdapter)(nil)
)

func (a *registryAdapter) Name() string {
	return "pools"
}

func (a *registryAdapter) LoadListed(ctx context.Context) (map[string]struct{}, error) {
	_, entries, err := a.registry.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	listed := make(map[string]struct{}, len(entries))
	for name := range entries {
		listed[name] = struct{}{}
	}
	return listed, nil
}

func (a *registryAdapter) LoadPresent(ctx context.Context, keys []string) (map[string]struct{}, error) {
	var (
		mu      sync.Mutex
		present = make(map[string]struct{}, len(keys))
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)
	for _, key := range keys {
		eg.Go(func() error {
			exists, err := a.backend.PoolExists(ctx, key)
			if err != nil {
				return err
			}
			if exists {
				mu.Lock()
				present[key] = struct{}{}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return present, nil
}

func (a *registryAdapter) LoadBindings(ctx context.Context, keys []string) (map[string]string, error) {
	return a.backend.BoundPools(ctx, keys)
}

func (a *registryAdapter) RemoveListed(ctx context.Context, keys []string) error {
	return a.registry.Remove(ctx, keys...)
}

// Auditor finds registry entries that break the available-pool contract:
// the pool is missing from storage or already backs a bucket.
type Auditor struct {
	adapter *registryAdapter
	logger  *zap.Logger
}

// NewAuditor creates an Auditor.
func NewAuditor(registry *Registry, b backend.Backend, cfg Config, logger *zap.Logger) *Auditor {
	concurrency := cfg.CreateConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Auditor{
		adapter: &registryAdapter{registry: registry, backend: b, concurrency: concurrency},
		logger:  logger,
	}
}

// Audit plans and, when opts allow, removes unhealthy entries.
func (a *Auditor) Audit(ctx context.Context, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	plan, executed, err := reconcile.ReconcileAndApply(ctx, a.adapter, opts)
	if err != nil {
		return plan, executed, err
	}

	a.logger.Info("Registry audit finished",
		zap.Int("listed", plan.Summary.TotalItems),
		zap.Int("missing", plan.Summary.MissingStorage),
		zap.Int("bound", plan.Summary.Bound),
		zap.Int("removed", executed))
	return plan, executed, nil
}
