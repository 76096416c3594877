// Package httptransport is the thin HTTP layer. It delegates to the scan
// service without embedding business logic so transport concerns stay
// isolated.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"regscope/internal/profile"
	"regscope/internal/questionnaire"
	regmodels "regscope/internal/regulation/models"
	scanmodels "regscope/internal/scan/models"
	dErrors "regscope/pkg/domain-errors"
	"regscope/pkg/platform/httputil"
)

// ScanService defines the scan operations the transport layer needs.
type ScanService interface {
	Run(ctx context.Context, p profile.Profile) (*scanmodels.Scan, error)
	Evaluate(ctx context.Context, p profile.Profile) ([]regmodels.MatchedRegulation, int)
	Get(ctx context.Context, id uuid.UUID) (*scanmodels.Scan, error)
	List(ctx context.Context, limit int) ([]*scanmodels.Scan, error)
	Replay(ctx context.Context, id uuid.UUID) (*scanmodels.Scan, error)
	ValidateLayer(layerID string, p profile.Profile) (map[string]questionnaire.ErrorKind, error)
	Regulations() []regmodels.Regulation
	Questionnaire() []questionnaire.Layer
}

// Handler wires scan endpoints to the scan service.
type Handler struct {
	service ScanService
	logger  *slog.Logger
}

func NewHandler(service ScanService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts all endpoints under /api/v1.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scans", h.handleRunScan)
		r.Post("/scans/evaluate", h.handleEvaluate)
		r.Get("/scans", h.handleListScans)
		r.Get("/scans/{scanID}", h.handleGetScan)
		r.Post("/scans/{scanID}/replay", h.handleReplayScan)
		r.Get("/regulations", h.handleListRegulations)
		r.Get("/questionnaire", h.handleQuestionnaire)
		r.Post("/questionnaire/{layerID}/validate", h.handleValidateLayer)
	})
}

type scanRequest struct {
	Profile profile.Profile `json:"profile"`
}

type evaluateResponse struct {
	Results []regmodels.MatchedRegulation `json:"results"`
	Score   int                           `json:"score"`
}

type validateRequest struct {
	Answers profile.Profile `json:"answers"`
}

type validateResponse struct {
	Valid  bool                               `json:"valid"`
	Errors map[string]questionnaire.ErrorKind `json:"errors"`
}

func (h *Handler) handleRunScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.DecodeJSON[scanRequest](w, r)
	if !ok {
		return
	}
	if req.Profile == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "profile is required"))
		return
	}

	scan, err := h.service.Run(ctx, req.Profile)
	if err != nil {
		h.logger.ErrorContext(ctx, "scan failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scan created",
		"scan_id", scan.ID,
		"matched", len(scan.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, scan)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[scanRequest](w, r)
	if !ok {
		return
	}
	if req.Profile == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "profile is required"))
		return
	}

	results, score := h.service.Evaluate(r.Context(), req.Profile)
	httputil.WriteJSON(w, http.StatusOK, evaluateResponse{Results: results, Score: score})
}

func (h *Handler) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "scanID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scan id"))
		return
	}

	scan, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scan)
}

func (h *Handler) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	scans, err := h.service.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if scans == nil {
		scans = []*scanmodels.Scan{}
	}
	httputil.WriteJSON(w, http.StatusOK, scans)
}

func (h *Handler) handleReplayScan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "scanID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid scan id"))
		return
	}

	scan, err := h.service.Replay(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scan)
}

func (h *Handler) handleListRegulations(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Regulations())
}

func (h *Handler) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Questionnaire())
}

// handleValidateLayer reports missing required answers for one layer.
// Validation findings are payload data, not HTTP errors: the user corrects
// input and retries, so the response is always 200 for a known layer.
func (h *Handler) handleValidateLayer(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[validateRequest](w, r)
	if !ok {
		return
	}
	if req.Answers == nil {
		req.Answers = profile.Profile{}
	}

	errs, err := h.service.ValidateLayer(chi.URLParam(r, "layerID"), req.Answers)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}
