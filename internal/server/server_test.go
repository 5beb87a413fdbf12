package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arytiwari/jioastro-sub001/internal/config"
	"github.com/arytiwari/jioastro-sub001/internal/database"
)

func setupTestServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	profilesDB, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "profiles.db"),
		Profile: database.ProfileStandard,
		Name:    "profiles",
	})
	require.NoError(t, err)
	t.Cleanup(func() { profilesDB.Close() })

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "chart_cache.db"),
		Profile: database.ProfileCache,
		Name:    "chart_cache",
	})
	require.NoError(t, err)
	t.Cleanup(func() { cacheDB.Close() })

	srv := New(Config{
		Log:        zerolog.Nop(),
		Cfg:        &config.Config{Port: 8002},
		ProfilesDB: profilesDB,
		CacheDB:    cacheDB,
	})
	return srv, cacheDB
}

func healthBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := healthBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	databases := body["databases"].(map[string]interface{})
	assert.Equal(t, "ok", databases["profiles"])
	assert.Equal(t, "ok", databases["chart_cache"])
}

func TestHandleHealth_FullIntegrityCheck(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health?full=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", healthBody(t, rec)["status"])
}

func TestHandleHealth_Degraded(t *testing.T) {
	srv, cacheDB := setupTestServer(t)
	require.NoError(t, cacheDB.Close())

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := healthBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
	databases := body["databases"].(map[string]interface{})
	assert.Equal(t, "unreachable", databases["chart_cache"])
	assert.Equal(t, "ok", databases["profiles"])
}
