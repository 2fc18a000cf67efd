package pools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bucket-manager/core/backend"
	"bucket-manager/core/metrics"

	"go.uber.org/zap"
)

// Registry is the shared document of pools created but not bound to a
// bucket. Every mutation is one document request; nothing is cached.
type Registry struct {
	backend backend.Backend
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates a Registry.
func NewRegistry(b backend.Backend, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Registry {
	return &Registry{backend: b, cfg: cfg, logger: logger, metrics: m}
}

// Publish adds names with empty payloads.
func (r *Registry) Publish(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	entries := make(map[string][]byte, len(names))
	for _, name := range names {
		entries[name] = nil
	}

	err := r.write(ctx, func() error {
		return r.backend.DocSet(ctx, r.cfg.AvailRef(), entries)
	})
	if err != nil {
		return fmt.Errorf("failed to publish %d pools: %w", len(names), err)
	}

	r.logger.Debug("Pools published", zap.Int("count", len(names)))
	return nil
}

// Withdraw returns a pool to the registry by setting its key with an empty
// payload. It uses the same set primitive as Publish, so the pool ends up
// listed as available whether or not it was before.
func (r *Registry) Withdraw(ctx context.Context, name string) error {
	err := r.write(ctx, func() error {
		return r.backend.DocSetKey(ctx, r.cfg.AvailRef(), name, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to withdraw pool %s: %w", name, err)
	}
	return nil
}

// EnsurePool creates the pool holding the registry document as a system
// bucket. An existing pool is not an error.
func (r *Registry) EnsurePool(ctx context.Context) error {
	ref := r.cfg.AvailRef()
	r.logger.Info("Creating registry pool", zap.String("pool", ref.Pool))

	index := &backend.Bucket{Name: ref.Pool, Pool: ref.Pool}
	err := r.backend.CreateBucket(ctx, r.cfg.Owner, index, nil, backend.CreateOptions{System: true})
	if err != nil && !errors.Is(err, backend.ErrAlreadyExists) {
		return fmt.Errorf("failed to create registry pool %s: %w", ref.Pool, err)
	}
	return nil
}

// write runs fn and, when the registry pool does not exist yet, creates it
// and runs fn once more.
func (r *Registry) write(ctx context.Context, fn func() error) error {
	err := fn()
	if !errors.Is(err, backend.ErrNotFound) {
		return err
	}
	if err := r.EnsurePool(ctx); err != nil {
		return err
	}
	return fn()
}

// Remove deletes entries outright.
func (r *Registry) Remove(ctx context.Context, names ...string) error {
	if err := r.backend.DocRemoveKeys(ctx, r.cfg.AvailRef(), names...); err != nil {
		return fmt.Errorf("failed to remove %d pools: %w", len(names), err)
	}
	return nil
}

// Snapshot reads the whole document. A document that was never published
// reads as empty.
func (r *Registry) Snapshot(ctx context.Context) ([]byte, map[string][]byte, error) {
	header, entries, err := r.backend.DocGet(ctx, r.cfg.AvailRef())
	if errors.Is(err, backend.ErrNotFound) {
		r.metrics.RegistrySize(0)
		return nil, map[string][]byte{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read registry: %w", err)
	}
	if entries == nil {
		entries = map[string][]byte{}
	}

	r.metrics.RegistrySize(len(entries))
	return header, entries, nil
}

// List returns the available pool names in order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	_, entries, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return sortedKeys(entries), nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
