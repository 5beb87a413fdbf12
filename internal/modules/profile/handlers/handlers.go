// Package handlers provides HTTP handlers for profile operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/chartcache"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
)

// Handler handles profile HTTP requests
type Handler struct {
	repo  *profile.Repository
	cache *chartcache.Repository
	log   zerolog.Logger
}

// NewHandler creates a new profile handler
func NewHandler(repo *profile.Repository, cache *chartcache.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("handler", "profile").Logger(),
	}
}

// CreateRequest represents a profile creation request
type CreateRequest struct {
	Name             string   `json:"name"`
	BirthDate        string   `json:"birth_date"`           // YYYY-MM-DD
	BirthTime        *string  `json:"birth_time,omitempty"` // HH:MM, nil when unknown
	UTCOffsetMinutes int      `json:"utc_offset_minutes"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// HandleCreate handles POST /api/profiles
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(profile.DateFormat, req.BirthDate); err != nil {
		http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.BirthTime != nil {
		if _, err := time.Parse(profile.TimeFormat, *req.BirthTime); err != nil {
			http.Error(w, "birth_time must be HH:MM", http.StatusBadRequest)
			return
		}
	}

	p := &profile.Profile{
		Name:             req.Name,
		BirthDate:        req.BirthDate,
		BirthTime:        req.BirthTime,
		UTCOffsetMinutes: req.UTCOffsetMinutes,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	}

	if err := h.repo.Create(p); err != nil {
		h.log.Error().Err(err).Msg("Failed to create profile")
		http.Error(w, "Failed to create profile", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(map[string]interface{}{
		"profile": p,
	}))
}

// HandleGet handles GET /api/profiles/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	p, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("profile_id", id.String()).Msg("Failed to load profile")
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"profile": p,
	}))
}

// HandleList handles GET /api/profiles
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list profiles")
		http.Error(w, "Failed to list profiles", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	}))
}

// HandleDelete handles DELETE /api/profiles/{id}
// Deleting a profile also drops its cached charts so a recreated profile
// with the same id can never serve stale artifacts.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("profile_id", id.String()).Msg("Failed to delete profile")
		http.Error(w, "Failed to delete profile", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Invalidate(id.String()); err != nil {
		h.log.Warn().Err(err).Str("profile_id", id.String()).Msg("Failed to invalidate chart cache")
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"deleted": id.String(),
	}))
}

// envelope wraps response data the way every endpoint does
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
