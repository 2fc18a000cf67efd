package buckets

import (
	"context"
	"testing"

	"bucket-manager/core/backend/backendtest"
	"bucket-manager/core/metrics"
	"bucket-manager/feature/pools"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPoolsConfig() pools.Config {
	return pools.Config{
		IndexPool:            ".rgw.buckets",
		AvailKey:             ".pools.avail",
		Prefix:               "p",
		PreallocateMax:       4,
		PreallocateThreshold: 2,
		CreateConcurrency:    2,
	}
}

type fixture struct {
	svc   *Service
	pools *pools.Service
	mem   *backendtest.Memory
	m     *metrics.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()
	return setupWithConfig(t, testPoolsConfig())
}

func setupWithConfig(t *testing.T, cfg pools.Config) *fixture {
	t.Helper()
	mem := backendtest.NewMemory()
	m := metrics.New()
	poolSvc := pools.NewService(mem, cfg, nil, zap.NewNop(), m)
	return &fixture{
		svc:   NewService(mem, poolSvc, cfg, zap.NewNop(), m),
		pools: poolSvc,
		mem:   mem,
		m:     m,
	}
}

// seedRegistry makes names exist as pools and lists them as available.
func (f *fixture) seedRegistry(t *testing.T, names ...string) {
	t.Helper()
	f.mem.AddPools(names...)
	require.NoError(t, f.pools.Registry().Publish(context.Background(), names))
}

func (f *fixture) available(t *testing.T) []string {
	t.Helper()
	names, err := f.pools.ListAvailable(context.Background())
	require.NoError(t, err)
	return names
}

// counter returns the value of a counter sample matching all labels.
func counter(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if matchLabels(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	got := make(map[string]string, len(pairs))
	for _, p := range pairs {
		got[p.GetName()] = p.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}
