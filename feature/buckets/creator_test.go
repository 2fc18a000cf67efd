package buckets

import (
	"context"
	"errors"
	"testing"

	"bucket-manager/core/backend"
	"bucket-manager/core/backend/mocks"
	"bucket-manager/core/metrics"
	"bucket-manager/feature/pools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreate_SystemBucketBypassesAllocation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	bucket, err := f.svc.CreateBucket(ctx, "admin", ".log", nil, false, 0)
	require.NoError(t, err)
	assert.Equal(t, ".log", bucket.Name)
	assert.Equal(t, ".log", bucket.Pool)

	assert.Zero(t, f.mem.CreatePoolsCalls)
	assert.True(t, f.mem.HasPool(".log"))
	_, ok := f.mem.Object(indexPool, ".log")
	assert.False(t, ok, "system buckets have no stored record")

	info, err := f.svc.GetBucketInfo(ctx, ".log")
	require.NoError(t, err)
	assert.Equal(t, ".log", info.Bucket.Pool)
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_bucket_creations_total", map[string]string{"result": resultSystem}))
}

func TestCreate_SystemBucketConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.CreateBucket(ctx, "admin", ".log", nil, true, 0)
	require.NoError(t, err)

	_, err = f.svc.CreateBucket(ctx, "admin", ".log", nil, true, 0)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)
}

func TestCreate_FromRegistry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")

	bucket, err := f.svc.CreateBucket(ctx, "alice", "photos", map[string][]byte{"acl": []byte("private")}, true, 9)
	require.NoError(t, err)
	assert.Equal(t, "photos", bucket.Name)
	assert.Equal(t, "pa", bucket.Pool)
	assert.NotZero(t, bucket.BucketID)

	got, owner, ok := f.mem.Bucket("photos")
	require.True(t, ok)
	assert.Equal(t, bucket, got)
	assert.Equal(t, "alice", owner)

	// The pool is not withdrawn from the registry by allocation.
	assert.Equal(t, []string{"pa"}, f.available(t))
	assert.Zero(t, f.mem.CreatePoolsCalls)
}

func TestCreate_IDAliasMatchesName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa", "pb")

	bucket, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.NoError(t, err)

	byName, err := f.svc.GetBucketInfo(ctx, "photos")
	require.NoError(t, err)
	byID, err := f.svc.GetBucketInfoByID(ctx, bucket.BucketID)
	require.NoError(t, err)

	assert.Equal(t, byName, byID)
	assert.Equal(t, bucket, byName.Bucket)
	assert.Equal(t, "alice", byName.Owner)
}

func TestCreate_FallbackOnEmptyRegistry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	bucket, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.NoError(t, err)
	assert.True(t, f.mem.HasPool(bucket.Pool))

	available := f.available(t)
	assert.Len(t, available, testPoolsConfig().PreallocateMax-1)
	assert.NotContains(t, available, bucket.Pool)
}

func TestCreate_ConflictWithdrawsPool(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")
	_, err := f.svc.CreateBucket(ctx, "bob", "photos", nil, true, 0)
	require.NoError(t, err)
	require.NoError(t, f.pools.Registry().Remove(ctx, "pa"))
	f.mem.AddPools("pb")
	require.NoError(t, f.pools.Registry().Publish(ctx, []string{"pb"}))

	_, err = f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)

	assert.Equal(t, []string{"pb"}, f.available(t))
	info, err := f.svc.GetBucketInfo(ctx, "photos")
	require.NoError(t, err)
	assert.Equal(t, "bob", info.Owner, "existing record is untouched")
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_compensations_total", map[string]string{"kind": "withdraw_pool", "outcome": "ok"}))
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_bucket_creations_total", map[string]string{"result": resultConflict}))
}

func TestCreate_ConflictWithdrawsPoolWithSinglePoolBatches(t *testing.T) {
	cfg := testPoolsConfig()
	cfg.PreallocateMax = 1
	cfg.PreallocateThreshold = 0
	f := setupWithConfig(t, cfg)
	ctx := context.Background()

	// Each fallback creates one pool and publishes nothing.
	_, err := f.svc.CreateBucket(ctx, "bob", "photos", nil, false, 0)
	require.NoError(t, err)
	assert.True(t, f.mem.HasPool(cfg.IndexPool))
	assert.Empty(t, f.available(t))

	_, err = f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)

	assert.Len(t, f.available(t), 1)
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_compensations_total", map[string]string{"kind": "withdraw_pool", "outcome": "ok"}))
}

func TestCreate_NonExclusiveDuplicateSucceeds(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")

	first, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, false, 0)
	require.NoError(t, err)
	second, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, false, 0)
	require.NoError(t, err)
	assert.Equal(t, first.BucketID, second.BucketID)
}

func TestCreate_StoreFailureDeletesBucket(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")
	boom := errors.New("index unavailable")
	f.mem.PutObjectErr = map[string]error{"photos": boom}

	_, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, _, ok := f.mem.Bucket("photos")
	assert.False(t, ok)
	assert.Equal(t, []string{"photos"}, f.mem.Deleted)
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_compensations_total", map[string]string{"kind": "delete_bucket", "outcome": "ok"}))
}

func TestCreate_StoreAndDeleteFailureReturnsStoreError(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")
	boom := errors.New("index unavailable")
	f.mem.PutObjectErr = map[string]error{"photos": boom}
	f.mem.DeleteBucketErr = errors.New("delete refused")

	_, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, counter(t, f.m, "bucket_manager_compensations_total", map[string]string{"kind": "delete_bucket", "outcome": "failed"}))
}

func TestCreate_BackendErrorPropagates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedRegistry(t, "pa")
	boom := errors.New("osd down")
	f.mem.CreateBucketErr = boom

	_, err := f.svc.CreateBucket(ctx, "alice", "photos", nil, true, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.mem.Deleted)
	_, ok := f.mem.Object(indexPool, "photos")
	assert.False(t, ok)
}

func TestCreate_AllocationErrorPropagates(t *testing.T) {
	f := setup(t)
	boom := errors.New("timeout")
	f.mem.DocGetErr = boom

	_, err := f.svc.CreateBucket(context.Background(), "alice", "photos", nil, true, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, f.mem.CreateBucketCalls)
}

func newMockCreator(t *testing.T) (*Creator, *mocks.Backend, pools.Config) {
	t.Helper()
	cfg := testPoolsConfig()
	mb := new(mocks.Backend)
	poolSvc := pools.NewService(mb, cfg, nil, zap.NewNop(), nil)
	store := NewInfoStore(mb, cfg.IndexPool, zap.NewNop())
	return NewCreator(mb, poolSvc.Allocator(), poolSvc.Registry(), store, zap.NewNop(), metrics.New()), mb, cfg
}

func TestCreate_ConflictWithdrawIssuesSingleKeySet(t *testing.T) {
	creator, mb, cfg := newMockCreator(t)
	ref := cfg.AvailRef()

	mb.On("DocGet", mock.Anything, ref).Return([]byte(nil), map[string][]byte{"pa": nil}, nil)
	mb.On("CreateBucket", mock.Anything, "alice", mock.AnythingOfType("*backend.Bucket"), map[string][]byte(nil),
		backend.CreateOptions{PoolBacked: true, Exclusive: true}).
		Return(backend.ErrAlreadyExists)
	mb.On("DocSetKey", mock.Anything, ref, "pa", []byte(nil)).Return(nil)

	_, err := creator.Create(context.Background(), "alice", "photos", nil, true, 0)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)

	mb.AssertExpectations(t)
	mb.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_ConflictWithdrawFailureKeepsConflict(t *testing.T) {
	creator, mb, cfg := newMockCreator(t)
	ref := cfg.AvailRef()

	mb.On("DocGet", mock.Anything, ref).Return([]byte(nil), map[string][]byte{"pa": nil}, nil)
	mb.On("CreateBucket", mock.Anything, "alice", mock.Anything, mock.Anything, mock.Anything).
		Return(backend.ErrAlreadyExists)
	mb.On("DocSetKey", mock.Anything, ref, "pa", []byte(nil)).Return(errors.New("redis down"))

	_, err := creator.Create(context.Background(), "alice", "photos", nil, true, 0)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)
	mb.AssertExpectations(t)
}

func TestCreate_CompensationSurvivesCanceledContext(t *testing.T) {
	creator, mb, cfg := newMockCreator(t)
	ref := cfg.AvailRef()
	ctx, cancel := context.WithCancel(context.Background())

	mb.On("DocGet", mock.Anything, ref).Return([]byte(nil), map[string][]byte{"pa": nil}, nil)
	mb.On("CreateBucket", mock.Anything, "alice", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(backend.ErrAlreadyExists)
	mb.On("DocSetKey", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), ref, "pa", []byte(nil)).
		Return(nil)

	_, err := creator.Create(ctx, "alice", "photos", nil, true, 0)
	assert.ErrorIs(t, err, backend.ErrAlreadyExists)
	mb.AssertExpectations(t)
}
