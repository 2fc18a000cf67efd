package pools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"bucket-manager/core/backend/backendtest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service, *backendtest.Memory) {
	svc, mem := setupService(t, testConfig())
	app := fiber.New()
	feature := NewFeature(svc)
	require.NoError(t, feature.Load(app))
	return app, svc, mem
}

func TestLoader(t *testing.T) {
	svc, _ := setupService(t, testConfig())
	feature := NewFeature(svc)

	assert.Equal(t, "pools", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleListPools(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	require.NoError(t, svc.registry.Publish(context.Background(), []string{"pb", "pa"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/pools", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Count int      `json:"count"`
		Pools []string `json:"pools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"pa", "pb"}, body.Pools)
}

func TestHandleListPools_BackendError(t *testing.T) {
	app, _, mem := setupTestApp(t)
	mem.DocGetErr = errors.New("timeout")

	resp, err := app.Test(httptest.NewRequest("GET", "/pools", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestHandleMaintain(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/pools/maintain", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res MaintainResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, MaintainResult{Before: 0, Generated: 10, After: 10}, res)
}

func TestHandleAudit(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	require.NoError(t, svc.registry.Publish(context.Background(), []string{"pgone"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/pools/audit?purge=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 0, body["executed"])

	resp, err = app.Test(httptest.NewRequest("GET", "/pools/audit?purge=true&confirm=true", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["executed"])
}
