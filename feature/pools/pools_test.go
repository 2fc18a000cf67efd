package pools

import (
	"testing"

	"bucket-manager/core/backend/backendtest"

	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		IndexPool:            ".rgw.buckets",
		AvailKey:             ".pools.avail",
		Prefix:               "p",
		PreallocateMax:       10,
		PreallocateThreshold: 5,
		CreateConcurrency:    2,
	}
}

func setupService(t *testing.T, cfg Config) (*Service, *backendtest.Memory) {
	t.Helper()
	mem := backendtest.NewMemory()
	return NewService(mem, cfg, nil, zap.NewNop(), nil), mem
}
