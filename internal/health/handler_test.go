// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(_ context.Context) error {
	return s.err
}

func newRouterWithChecker(checker Checker) (chi.Router, *Handler) {
	handler := NewHandler(checker)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, handler
}

func get(router chi.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	router, _ := newRouterWithChecker(&stubChecker{})

	for _, target := range []string{"/healthz", "/livez"} {
		rec := get(router, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)

		var resp StatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
	}
}

func TestLiveness_DuringShutdown(t *testing.T) {
	router, handler := newRouterWithChecker(&stubChecker{})
	handler.SetShutdown(true)

	rec := get(router, "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadiness_HealthyDatabase(t *testing.T) {
	router, _ := newRouterWithChecker(&stubChecker{})

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Checks, 1)
	assert.Equal(t, "database", resp.Checks[0].Name)
	assert.True(t, resp.Checks[0].Healthy)
}

func TestReadiness_DatabaseDown(t *testing.T) {
	router, _ := newRouterWithChecker(&stubChecker{
		err: errors.New("connection refused"),
	})

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	require.Len(t, resp.Checks, 1)
	assert.False(t, resp.Checks[0].Healthy)
	assert.Equal(t, "ping failed", resp.Checks[0].Message)
}

func TestReadiness_NotReady(t *testing.T) {
	router, handler := newRouterWithChecker(&stubChecker{})
	handler.SetReady(false)

	rec := get(router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
}
