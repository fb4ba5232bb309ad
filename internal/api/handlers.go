package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/yegors/notamify/internal/config"
	"github.com/yegors/notamify/internal/notam"
	"github.com/yegors/notamify/internal/prompts"
	"github.com/yegors/notamify/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	notamService *notam.Service
	config       *config.Config
	logger       *logger.Logger
	startTime    time.Time
}

// NewHandler creates a new API handler
func NewHandler(notamService *notam.Service, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		notamService: notamService,
		config:       config,
		logger:       logger.Named("api-handler"),
		startTime:    time.Now(),
	}
}

// notamQueryParams reads the shared query parameters of the two NOTAM
// operations. hours_from_now of 0 means "use the configured default".
func notamQueryParams(r *http.Request) (locations, startsAt, endsAt string, hoursFromNow int, err error) {
	q := r.URL.Query()
	locations = q.Get("locations")
	startsAt = q.Get("starts_at")
	endsAt = q.Get("ends_at")

	if raw := q.Get("hours_from_now"); raw != "" {
		hoursFromNow, err = strconv.Atoi(raw)
		if err != nil || hoursFromNow <= 0 {
			return "", "", "", 0, errors.New("hours_from_now must be a positive integer")
		}
	}
	return locations, startsAt, endsAt, hoursFromNow, nil
}

// GetNOTAMs returns the combined NOTAM data for the requested airports as
// indented JSON (all pages merged into one result).
func (h *Handler) GetNOTAMs(w http.ResponseWriter, r *http.Request) {
	locations, startsAt, endsAt, hoursFromNow, err := notamQueryParams(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.notamService.GetNOTAMs(r.Context(), locations, startsAt, endsAt, hoursFromNow)
	if err != nil {
		h.writeNotamError(w, err)
		return
	}

	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		h.logger.Error("Failed to encode aggregate result", logger.Error(err))
		WriteError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetNOTAMSummary returns the affected-elements summary text for the
// requested airports.
func (h *Handler) GetNOTAMSummary(w http.ResponseWriter, r *http.Request) {
	locations, startsAt, endsAt, hoursFromNow, err := notamQueryParams(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.notamService.GetAffectedElements(r.Context(), locations, startsAt, endsAt, hoursFromNow)
	if err != nil {
		h.writeNotamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(summary))
}

// writeNotamError maps service errors to HTTP statuses: caller-fixable query
// problems are 400s, upstream failures are 502s with the provider detail
// passed through.
func (h *Handler) writeNotamError(w http.ResponseWriter, err error) {
	var invalidQuery *notam.InvalidQueryError
	var transport *notam.TransportError
	var incomplete *notam.IncompleteError

	switch {
	case errors.As(err, &invalidQuery):
		WriteError(w, http.StatusBadRequest, invalidQuery.Error())
	case errors.As(err, &transport):
		WriteError(w, http.StatusBadGateway, transport.Error())
	case errors.As(err, &incomplete):
		WriteError(w, http.StatusBadGateway, incomplete.Error())
	default:
		h.logger.Error("Unexpected error handling NOTAM request", logger.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// GetAPIInfo returns static information about the Notamify API limits
func (h *Handler) GetAPIInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(prompts.APIInfo()))
}

// GetAnalysisPrompt returns the NOTAM analysis prompt for the requested
// airport codes.
func (h *Handler) GetAnalysisPrompt(w http.ResponseWriter, r *http.Request) {
	airports := r.URL.Query().Get("airports")
	if airports == "" {
		WriteError(w, http.StatusBadRequest, "airports query parameter is required")
		return
	}

	prompt, err := prompts.AnalyzeNOTAMs(airports)
	if err != nil {
		h.logger.Error("Failed to render analysis prompt", logger.Error(err))
		WriteError(w, http.StatusInternalServerError, "failed to render prompt")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(prompt))
}

// GetHealth returns the service health status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	}
	WriteJSON(w, http.StatusOK, response)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
