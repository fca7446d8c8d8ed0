package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ENEASJO/sistema-de-filtro/internal/screening/models"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	"github.com/ENEASJO/sistema-de-filtro/pkg/platform/httputil"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// Service defines the interface for screening operations.
type Service interface {
	ProcessOrganization(ctx context.Context, ruc domain.RUC) (*models.AggregationResult, error)
	ProcessBatch(ctx context.Context, rawRUCs []string) (*models.BatchResult, error)
}

// Handler wires screening endpoints to the screening service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a screening handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts screening endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/screening/organization", h.HandleOrganization)
	r.Post("/screening/organizations", h.HandleOrganizations)
}

// HandleOrganization handles POST /screening/organization requests.
func (h *Handler) HandleOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[OrganizationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ProcessOrganization(ctx, req.ParsedRUC())
	if err != nil {
		h.logger.ErrorContext(ctx, "organization screening failed",
			"request_id", requestID,
			"ruc", req.RUC,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization screened",
		"request_id", requestID,
		"ruc", req.RUC,
		"approved", result.Approved,
		"people", len(result.People),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleOrganizations handles POST /screening/organizations requests.
func (h *Handler) HandleOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[OrganizationsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ProcessBatch(ctx, req.RUCs)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch screening failed",
			"request_id", requestID,
			"requested", len(req.RUCs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch screened",
		"request_id", requestID,
		"processed", result.Summary.TotalProcessed,
		"approved", result.Summary.ApprovedCount,
		"rejected", result.Summary.RejectedCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}
