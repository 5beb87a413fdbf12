package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/arytiwari/jioastro-sub001/internal/chartcache"
	"github.com/arytiwari/jioastro-sub001/internal/domain"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
)

func setupTestHandler(t *testing.T) (*chi.Mux, *chartcache.Repository) {
	t.Helper()
	log := zerolog.Nop()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := profile.NewRepository(db, log)
	require.NoError(t, err)
	cacheRepo, err := chartcache.NewRepository(db)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Route("/api", NewHandler(repo, cacheRepo, log).RegisterRoutes)
	return router, cacheRepo
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestCreateGetDelete(t *testing.T) {
	router, cache := setupTestHandler(t)
	bt := "06:30"
	lat, lon := 28.6139, 77.2090

	rec := doJSON(t, router, http.MethodPost, "/api/profiles/", CreateRequest{
		Name:             "Asha",
		BirthDate:        "1990-06-15",
		BirthTime:        &bt,
		UTCOffsetMinutes: 330,
		Latitude:         &lat,
		Longitude:        &lon,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			Profile profile.Profile `json:"profile"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.Profile.ID.String()
	assert.Equal(t, "Asha", created.Data.Profile.Name)

	rec = doJSON(t, router, http.MethodGet, "/api/profiles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/profiles/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Seed a cached chart so deletion can prove invalidation
	require.NoError(t, cache.Store(id, chartcache.TypeNatal, &domain.Chart{Moment: time.Now().UTC()}, time.Hour))

	rec = doJSON(t, router, http.MethodDelete, "/api/profiles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var gone domain.Chart
	found, err := cache.Get(id, chartcache.TypeNatal, &gone)
	require.NoError(t, err)
	assert.False(t, found, "cached charts must not survive profile deletion")

	rec = doJSON(t, router, http.MethodGet, "/api/profiles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_Validation(t *testing.T) {
	router, _ := setupTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/profiles/", CreateRequest{BirthDate: "1990-06-15"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name")

	rec = doJSON(t, router, http.MethodPost, "/api/profiles/", CreateRequest{Name: "X", BirthDate: "15/06/1990"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "bad date format")

	badTime := "6:30 AM"
	rec = doJSON(t, router, http.MethodPost, "/api/profiles/", CreateRequest{
		Name: "X", BirthDate: "1990-06-15", BirthTime: &badTime,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "bad time format")
}
