package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/totl-app/totl-api/internal/usecase"
)

// maxWebhookBodyBytes caps provider callbacks; livescore trigger rows are
// a few hundred bytes, so anything past this is malformed or hostile.
const maxWebhookBodyBytes = 1 << 20

func (h *Handler) ReceiveScoreChange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReceiveScoreChange")
	defer span.End()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read webhook body: %v", usecase.ErrInvalidInput, err))
		return
	}

	summary, err := h.webhookService.Process(ctx, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "score change webhook failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

type declareResultRequest struct {
	Gameweek     int    `json:"gameweek" validate:"required,gt=0"`
	FixtureIndex *int   `json:"fixture_index" validate:"required,gte=0"`
	Outcome      string `json:"outcome" validate:"required,oneof=H D A"`
}

func (h *Handler) DeclareResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclareResult")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req declareResultRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	declared, err := h.resultService.Declare(ctx, req.Gameweek, *req.FixtureIndex, req.Outcome)
	if err != nil {
		h.logger.WarnContext(ctx, "declare result failed", "gameweek", req.Gameweek, "fixture_index", *req.FixtureIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, declaredResultDTO{
		Gameweek:     declared.Gameweek,
		FixtureIndex: declared.FixtureIndex,
		Outcome:      string(declared.Outcome),
		DeclaredAt:   declared.DeclaredAt,
	})
}

type declaredResultDTO struct {
	Gameweek     int       `json:"gameweek"`
	FixtureIndex int       `json:"fixture_index"`
	Outcome      string    `json:"outcome"`
	DeclaredAt   time.Time `json:"declared_at"`
}

func (h *Handler) RecountLeagueTables(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecountLeagueTables")
	defer span.End()

	summary, err := h.recountService.RecountAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recount league tables failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
