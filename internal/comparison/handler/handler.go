package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ENEASJO/sistema-de-filtro/internal/comparison/models"
	"github.com/ENEASJO/sistema-de-filtro/pkg/platform/httputil"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// Service defines the interface for comparison operations.
type Service interface {
	CompareIdentifiers(ctx context.Context, rawDNIs []string) (*models.ComparisonReport, error)
}

// Handler wires comparison endpoints to the comparison service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a comparison handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts comparison endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/comparison/relatives", h.HandleCompare)
}

// HandleCompare handles POST /comparison/relatives requests.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CompareRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.CompareIdentifiers(ctx, req.DNIs)
	if err != nil {
		h.logger.ErrorContext(ctx, "relative comparison failed",
			"request_id", requestID,
			"requested", len(req.DNIs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "relatives compared",
		"request_id", requestID,
		"total_input", report.TotalInput,
		"links", len(report.Links),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, report)
}
