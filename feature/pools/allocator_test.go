package pools

import (
	"context"
	"errors"
	"testing"
	"testing/iotest"

	"bucket-manager/core/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAllocate_FromRegistry(t *testing.T) {
	svc, mem := setupService(t, testConfig())
	ctx := context.Background()

	published := []string{"pa", "pb", "pc"}
	mem.AddPools(published...)
	require.NoError(t, svc.registry.Publish(ctx, published))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		b, err := svc.allocator.Allocate(ctx, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", b.Name)
		assert.Contains(t, published, b.Pool)
		seen[b.Pool] = true
	}
	assert.Zero(t, mem.CreatePoolsCalls)
	// Fifty uniform draws over three pools miss one with negligible probability.
	assert.Len(t, seen, 3)

	// Allocation reads without consuming.
	names, err := svc.registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, published, names)
}

func TestAllocate_FallbackOnAbsentRegistry(t *testing.T) {
	cfg := testConfig()
	cfg.PreallocateMax = 5
	svc, mem := setupService(t, cfg)
	ctx := context.Background()

	b, err := svc.allocator.Allocate(ctx, "photos")
	require.NoError(t, err)
	assert.Equal(t, "photos", b.Name)
	assert.True(t, mem.HasPool(b.Pool))
	assert.Equal(t, 1, mem.CreatePoolsCalls)

	names, err := svc.registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 4)
	assert.NotContains(t, names, b.Pool)
}

func TestAllocate_FallbackOnEmptyRegistry(t *testing.T) {
	cfg := testConfig()
	cfg.PreallocateMax = 3
	svc, mem := setupService(t, cfg)
	ctx := context.Background()

	// The document exists but holds nothing.
	require.NoError(t, svc.registry.Publish(ctx, []string{"pgone"}))
	require.NoError(t, svc.registry.Remove(ctx, "pgone"))

	b, err := svc.allocator.Allocate(ctx, "photos")
	require.NoError(t, err)
	assert.True(t, mem.HasPool(b.Pool))

	names, err := svc.registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestAllocate_FallbackSinglePool(t *testing.T) {
	cfg := testConfig()
	cfg.PreallocateMax = 1
	cfg.PreallocateThreshold = 1
	svc, mem := setupService(t, cfg)

	b, err := svc.allocator.Allocate(context.Background(), "photos")
	require.NoError(t, err)
	assert.True(t, mem.HasPool(b.Pool))
	// Nothing left to publish, but the registry pool exists for later
	// withdrawals and bucket records.
	assert.True(t, mem.HasPool(".rgw.buckets"))

	names, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestAllocate_FallbackGenerationFails(t *testing.T) {
	svc, mem := setupService(t, testConfig())
	mem.CreatePoolsErr = errors.New("cluster full")

	_, err := svc.allocator.Allocate(context.Background(), "photos")
	assert.ErrorContains(t, err, "cluster full")
}

func TestAllocate_SnapshotError(t *testing.T) {
	svc, mem := setupService(t, testConfig())
	mem.DocGetErr = errors.New("timeout")

	_, err := svc.allocator.Allocate(context.Background(), "photos")
	assert.ErrorContains(t, err, "timeout")
	assert.Zero(t, mem.CreatePoolsCalls)
}

func TestAllocate_RandomFailure(t *testing.T) {
	svc, mem := setupService(t, testConfig())
	ctx := context.Background()
	mem.AddPools("pa", "pb")
	require.NoError(t, svc.registry.Publish(ctx, []string{"pa", "pb"}))

	alloc := NewAllocator(svc.registry, svc.prealloc, testConfig(), iotest.ErrReader(errors.New("no entropy")), zap.NewNop(), nil)
	_, err := alloc.Allocate(ctx, "photos")
	assert.ErrorIs(t, err, random.ErrUnavailable)
}
