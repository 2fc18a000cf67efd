package pools

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Maintainer keeps the registry between the threshold and the maximum.
type Maintainer struct {
	registry *Registry
	prealloc *Preallocator
	cfg      Config
	logger   *zap.Logger
	sf       singleflight.Group
}

// MaintainResult describes one maintenance pass.
type MaintainResult struct {
	Before    int `json:"before"`
	Generated int `json:"generated"`
	After     int `json:"after"`
}

// NewMaintainer creates a Maintainer.
func NewMaintainer(registry *Registry, prealloc *Preallocator, cfg Config, logger *zap.Logger) *Maintainer {
	return &Maintainer{registry: registry, prealloc: prealloc, cfg: cfg, logger: logger}
}

// RunOnce tops the registry up to PreallocateMax when it holds fewer than
// PreallocateThreshold pools. Concurrent calls in one process share a pass,
// and the shared pass is not cut short when the caller that started it goes
// away.
func (m *Maintainer) RunOnce(ctx context.Context) (MaintainResult, error) {
	v, err, _ := m.sf.Do("maintain", func() (any, error) {
		return m.runOnce(context.WithoutCancel(ctx))
	})
	if err != nil {
		return MaintainResult{}, err
	}
	return v.(MaintainResult), nil
}

func (m *Maintainer) runOnce(ctx context.Context) (MaintainResult, error) {
	_, entries, err := m.registry.Snapshot(ctx)
	if err != nil {
		return MaintainResult{}, err
	}

	res := MaintainResult{Before: len(entries), After: len(entries)}
	if res.Before >= m.cfg.PreallocateThreshold {
		return res, nil
	}

	m.logger.Info("Allocating pools",
		zap.Int("available", res.Before),
		zap.Int("threshold", m.cfg.PreallocateThreshold),
		zap.Int("max", m.cfg.PreallocateMax))

	created, err := m.prealloc.Generate(ctx, m.cfg.PreallocateMax-res.Before)
	if err != nil {
		return res, fmt.Errorf("failed to preallocate pools: %w", err)
	}
	if err := m.registry.Publish(ctx, created); err != nil {
		return res, fmt.Errorf("failed to register available pools: %w", err)
	}

	res.Generated = len(created)
	res.After = res.Before + len(created)
	return res, nil
}

// Run calls RunOnce every interval until ctx is done. Failures are logged
// and retried on the next tick.
func (m *Maintainer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := m.RunOnce(ctx); err != nil && ctx.Err() == nil {
			m.logger.Error("Pool maintenance failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
