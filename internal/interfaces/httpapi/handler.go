package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/totl-app/totl-api/internal/platform/logging"
	"github.com/totl-app/totl-api/internal/usecase"
)

type Handler struct {
	standingsService  *usecase.StandingsService
	miniLeagueService *usecase.MiniLeagueService
	webhookService    *usecase.ScoreWebhookService
	resultService     *usecase.ResultService
	recountService    *usecase.RecountService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	miniLeagueService *usecase.MiniLeagueService,
	webhookService *usecase.ScoreWebhookService,
	resultService *usecase.ResultService,
	recountService *usecase.RecountService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:  standingsService,
		miniLeagueService: miniLeagueService,
		webhookService:    webhookService,
		resultService:     resultService,
		recountService:    recountService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
