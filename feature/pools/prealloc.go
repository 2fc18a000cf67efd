package pools

import (
	"context"
	"fmt"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"
	"bucket-manager/core/random"

	"go.uber.org/zap"
)

// Preallocator creates batches of freshly named pools.
type Preallocator struct {
	backend backend.Backend
	cfg     Config
	src     random.Source
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewPreallocator creates a Preallocator. A nil src uses the default
// cryptographic source.
func NewPreallocator(b backend.Backend, cfg Config, src random.Source, logger *zap.Logger, m *metrics.Metrics) *Preallocator {
	return &Preallocator{backend: b, cfg: cfg, src: src, logger: logger, metrics: m}
}

// Name returns a candidate pool name.
func (p *Preallocator) Name() (string, error) {
	suffix, err := random.AlphaNumeric(p.src, SuffixLength)
	if err != nil {
		return "", err
	}
	return p.cfg.Prefix + suffix, nil
}

// Generate asks the backend to create count new pools and returns the ones
// that were created, in request order. Partial failure is not an error; the
// call fails only when no pool was created.
func (p *Preallocator) Generate(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("pool count must be positive, got %d", count)
	}

	names := make([]string, count)
	for i := range names {
		name, err := p.Name()
		if err != nil {
			return nil, fmt.Errorf("failed to name pool: %w", err)
		}
		names[i] = name
	}

	results, err := p.backend.CreatePools(ctx, p.cfg.Owner, names)
	if err != nil {
		return nil, fmt.Errorf("failed to create pools: %w", err)
	}
	if len(results) != len(names) {
		return nil, fmt.Errorf("backend returned %d results for %d pools", len(results), len(names))
	}

	var (
		created  = make([]string, 0, count)
		firstErr error
		failed   int
	)
	for i, res := range results {
		if res == nil {
			created = append(created, names[i])
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = res
		}
		p.logger.Debug("Pool creation failed", zap.String("pool", names[i]), zap.Error(res))
	}
	p.metrics.PoolsGenerated(len(created), failed)

	if len(created) == 0 {
		if firstErr == nil {
			firstErr = backend.ErrNotFound
		}
		return nil, fmt.Errorf("no pool created out of %d: %w", count, firstErr)
	}

	if failed > 0 {
		p.logger.Warn("Pool preallocation partially failed",
			zap.Int("requested", count),
			zap.Int("created", len(created)),
			zap.Error(firstErr))
	} else {
		p.logger.Info("Pools preallocated", zap.Int("created", len(created)))
	}
	return created, nil
}
