package pools

import (
	"context"
	"testing"

	"bucket-manager/core/backend"
	"bucket-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor(t *testing.T) {
	svc, mem := setupService(t, testConfig())
	ctx := context.Background()

	mem.AddPools("pfree", "pbound")
	require.NoError(t, svc.registry.Publish(ctx, []string{"pfree", "pbound", "pgone"}))
	require.NoError(t, mem.CreateBucket(ctx, "alice", &backend.Bucket{Name: "photos", Pool: "pbound"}, nil,
		backend.CreateOptions{PoolBacked: true}))

	t.Run("ReportOnly", func(t *testing.T) {
		plan, executed, err := svc.Audit(ctx, reconcile.ReconcileOptions{DryRun: true})
		require.NoError(t, err)
		assert.Zero(t, executed)
		assert.Equal(t, reconcile.PlanSummary{TotalItems: 3, Healthy: 1, MissingStorage: 1, Bound: 1}, plan.Summary)
		assert.Equal(t, "photos", plan.Results[0].BoundTo)
	})

	t.Run("PurgeUnconfirmed", func(t *testing.T) {
		plan, executed, err := svc.Audit(ctx, reconcile.ReconcileOptions{DoPurge: true})
		require.NoError(t, err)
		assert.Zero(t, executed)
		assert.Len(t, plan.Actions, 2)
	})

	t.Run("Purge", func(t *testing.T) {
		_, executed, err := svc.Audit(ctx, reconcile.ReconcileOptions{DoPurge: true, Confirmed: true})
		require.NoError(t, err)
		assert.Equal(t, 2, executed)

		names, err := svc.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"pfree"}, names)
	})
}
