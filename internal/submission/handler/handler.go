package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/internal/submission"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/submission-mocks.go -package=mocks

// Service defines the interface for submission operations.
type Service interface {
	Submit(ctx context.Context, input any) (*submission.Submission, error)
	List(ctx context.Context) ([]submission.Submission, error)
}

// Handler exposes the submission service over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a submission handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the submission routes. The router is expected to be
// scoped under /api.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submit", h.HandleSubmit)
	r.Get("/submissions", h.HandleList)
}

// HandleSubmit handles POST /api/submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	input, err := decodeSubmitBody(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "unreadable submission body",
			"request_id", requestID,
			"error", err,
		)
		writeFailure(w, err)
		return
	}

	if _, err := h.service.Submit(ctx, input); err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "submission rejected",
				"request_id", requestID,
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to store submission",
				"request_id", requestID,
				"error", err,
			)
		}
		writeFailure(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{Success: true})
}

// HandleList handles GET /api/submissions.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list submissions",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeFailure(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, subs)
}
