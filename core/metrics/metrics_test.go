package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"bucket-manager/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.PoolsGenerated(3, 1)
		m.Allocated(metrics.SourceRegistry)
		m.RegistrySize(5)
		m.BucketCreated("ok")
		m.Compensated("withdraw", nil)
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.PoolsGenerated(3, 2)
	m.Allocated(metrics.SourceFallback)
	m.RegistrySize(7)
	m.BucketCreated("conflict")
	m.Compensated("delete_bucket", errors.New("boom"))

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, "bucket_manager_pools_generated_total 3")
	assert.Contains(t, text, "bucket_manager_pools_failed_total 2")
	assert.Contains(t, text, `bucket_manager_pool_allocations_total{source="fallback"} 1`)
	assert.Contains(t, text, "bucket_manager_available_pools 7")
	assert.Contains(t, text, `bucket_manager_bucket_creations_total{result="conflict"} 1`)
	assert.Contains(t, text, `bucket_manager_compensations_total{kind="delete_bucket",outcome="failed"} 1`)
}
