package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// AnalysisHandler exposes the analysis lifecycle over HTTP.
type AnalysisHandler struct {
	service interfaces.AnalysisService
	logger  arbor.ILogger
}

func NewAnalysisHandler(service interfaces.AnalysisService, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeRequest is the body for POST /api/analyze.
type AnalyzeRequest struct {
	Tickers string `json:"tickers"`
}

// AnalyzeHandler starts an analysis run.
// Returns 202 when started, 409 when a run is already in flight, and a
// 200 no-op for input with no tickers.
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Tickers) == "" {
		WriteStatus(w, http.StatusOK, "ignored", "No tickers provided")
		return
	}

	if h.service.Snapshot().Loading {
		WriteError(w, http.StatusConflict, "Analysis already in progress")
		return
	}

	if !h.service.Submit(req.Tickers) {
		// Raced with another submission, or the input parsed to nothing.
		if h.service.Snapshot().Loading {
			WriteError(w, http.StatusConflict, "Analysis already in progress")
			return
		}
		WriteStatus(w, http.StatusOK, "ignored", "No tickers provided")
		return
	}

	WriteStatus(w, http.StatusAccepted, "started", "Analysis started")
}

// StateHandler returns the current analysis state snapshot.
func (h *AnalysisHandler) StateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.service.Snapshot())
}

// DismissHandler clears an error outcome.
func (h *AnalysisHandler) DismissHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	h.service.DismissError()
	WriteJSON(w, http.StatusOK, h.service.Snapshot())
}
