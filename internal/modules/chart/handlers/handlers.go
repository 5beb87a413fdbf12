// Package handlers provides HTTP handlers for chart operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/chartcache"
	"github.com/arytiwari/jioastro-sub001/internal/domain"
	"github.com/arytiwari/jioastro-sub001/internal/modules/chart"
	"github.com/arytiwari/jioastro-sub001/internal/modules/dasha"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
	"github.com/arytiwari/jioastro-sub001/internal/modules/varga"
)

// Handler handles chart HTTP requests
type Handler struct {
	chartService *chart.Service
	transformer  *varga.Transformer
	dashaEngine  *dasha.Engine
	profileRepo  *profile.Repository
	cache        *chartcache.Repository
	log          zerolog.Logger
}

// NewHandler creates a new chart handler
func NewHandler(
	chartService *chart.Service,
	transformer *varga.Transformer,
	dashaEngine *dasha.Engine,
	profileRepo *profile.Repository,
	cache *chartcache.Repository,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		chartService: chartService,
		transformer:  transformer,
		dashaEngine:  dashaEngine,
		profileRepo:  profileRepo,
		cache:        cache,
		log:          log.With().Str("handler", "chart").Logger(),
	}
}

// ComputeRequest represents an ad-hoc chart computation request.
// The moment must already be normalized to UTC by the caller; timezone
// resolution is not this service's job.
type ComputeRequest struct {
	Moment       string  `json:"moment"` // RFC3339
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Divisions    []int   `json:"divisions,omitempty"`     // Divisional charts to attach
	IncludeDasha bool    `json:"include_dasha,omitempty"` // Attach the Vimshottari timeline
}

// HandleCompute handles POST /api/charts/compute
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	moment, err := time.Parse(time.RFC3339, req.Moment)
	if err != nil {
		http.Error(w, "moment must be RFC3339", http.StatusBadRequest)
		return
	}

	c, err := h.chartService.Assemble(moment.UTC(), req.Latitude, req.Longitude)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data := map[string]interface{}{
		"chart": c,
	}

	if len(req.Divisions) > 0 {
		divisionals := make([]*domain.DivisionalChart, 0, len(req.Divisions))
		for _, n := range req.Divisions {
			dc, err := h.transformer.Transform(c, n)
			if err != nil {
				h.writeDomainError(w, err)
				return
			}
			divisionals = append(divisionals, dc)
		}
		data["divisional_charts"] = divisionals
	}

	if req.IncludeDasha {
		moon, ok := c.Position(domain.Moon)
		if !ok {
			http.Error(w, "Moon position missing from chart", http.StatusInternalServerError)
			return
		}
		timeline, err := h.dashaEngine.Generate(moon.Longitude, c.Moment)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		data["dasha_timeline"] = timeline
	}

	h.writeJSON(w, http.StatusOK, envelope(data))
}

// HandleProfileChart handles GET /api/charts/profile/{id}
// Cache-first: serves the stored chart when fresh, recomputes otherwise.
// Query params: refresh=true bypasses the cache, approximate=true enables
// the degraded no-birth-time mode.
func (h *Handler) HandleProfileChart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"
	approximate := r.URL.Query().Get("approximate") == "true"

	if !refresh {
		var cached domain.Chart
		found, err := h.cache.GetIfFresh(p.ID.String(), chartcache.TypeNatal, &cached)
		if err != nil {
			h.log.Warn().Err(err).Str("profile_id", p.ID.String()).Msg("Chart cache read failed")
		} else if found {
			h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
				"chart":  &cached,
				"cached": true,
			}))
			return
		}
	}

	c, err := h.chartService.AssembleForProfile(p, approximate)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	// Cache only after a fully successful assembly - a failed computation
	// must never leave a half-written artifact. Approximate charts are
	// never cached: the cache must only hold what a caller who did not
	// opt into the degraded mode may be served.
	if !c.Approximate {
		if err := h.cache.Store(p.ID.String(), chartcache.TypeNatal, c, chartcache.TTLNatalChart); err != nil {
			h.log.Warn().Err(err).Str("profile_id", p.ID.String()).Msg("Failed to cache chart")
		}
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"chart":  c,
		"cached": false,
	}))
}

// HandleProfileDivisional handles GET /api/charts/profile/{id}/divisional/{n}
func (h *Handler) HandleProfileDivisional(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "division must be an integer", http.StatusBadRequest)
		return
	}

	c, err := h.profileChart(p, r.URL.Query().Get("approximate") == "true")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	dc, err := h.transformer.Transform(c, n)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"divisional_chart": dc,
	}))
}

// HandleProfileDasha handles GET /api/charts/profile/{id}/dasha
// The query moment for the current period is an explicit "at" parameter;
// only the handler defaults it to the server clock, the engine never does.
func (h *Handler) HandleProfileDasha(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	c, err := h.profileChart(p, r.URL.Query().Get("approximate") == "true")
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	moon, found := c.Position(domain.Moon)
	if !found {
		http.Error(w, "Moon position missing from chart", http.StatusInternalServerError)
		return
	}

	timeline, err := h.dashaEngine.Generate(moon.Longitude, c.Moment)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "at must be RFC3339", http.StatusBadRequest)
			return
		}
		at = parsed.UTC()
	}

	data := map[string]interface{}{
		"timeline": timeline,
	}

	maha, antar, err := h.dashaEngine.Current(timeline, at)
	if errors.Is(err, dasha.ErrOutOfTimeline) {
		data["current"] = nil
		data["current_note"] = "query moment outside the 120-year timeline"
	} else {
		data["current"] = map[string]interface{}{
			"at":         at,
			"mahadasha":  maha,
			"antardasha": antar,
		}
	}

	h.writeJSON(w, http.StatusOK, envelope(data))
}

// profileChart returns the natal chart for a profile, cache-first
func (h *Handler) profileChart(p *profile.Profile, approximate bool) (*domain.Chart, error) {
	var cached domain.Chart
	found, err := h.cache.GetIfFresh(p.ID.String(), chartcache.TypeNatal, &cached)
	if err == nil && found {
		return &cached, nil
	}

	c, err := h.chartService.AssembleForProfile(p, approximate)
	if err != nil {
		return nil, err
	}
	if !c.Approximate {
		if err := h.cache.Store(p.ID.String(), chartcache.TypeNatal, c, chartcache.TTLNatalChart); err != nil {
			h.log.Warn().Err(err).Str("profile_id", p.ID.String()).Msg("Failed to cache chart")
		}
	}
	return c, nil
}

// loadProfile resolves the {id} URL parameter to a stored profile, writing
// the error response itself when resolution fails.
func (h *Handler) loadProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid profile id", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.profileRepo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("profile_id", id.String()).Msg("Failed to load profile")
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return nil, false
	}
	if p == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

// writeDomainError maps the core error taxonomy onto HTTP statuses
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var invalid *domain.InvalidInputError
	var incomplete *domain.IncompleteBirthDataError
	var computation *domain.ComputationError

	switch {
	case errors.As(err, &invalid):
		http.Error(w, invalid.Error(), http.StatusBadRequest)
	case errors.As(err, &incomplete):
		http.Error(w, incomplete.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &computation):
		h.log.Error().Err(err).Msg("Chart computation failed")
		http.Error(w, computation.Error(), http.StatusInternalServerError)
	default:
		h.log.Error().Err(err).Msg("Unexpected chart error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
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
