package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/totl-app/totl-api/internal/usecase"
)

func (h *Handler) GetGameweekStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekStandings")
	defer span.End()

	gameweek, err := parseGameweekPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.standingsService.GameweekLeaderboard(ctx, gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "gameweek standings failed", "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekStandingsDTO{
		Gameweek: gameweek,
		Entries:  entries,
	})
}

func (h *Handler) GetPeriodStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPeriodStandings")
	defer span.End()

	period, err := usecase.ParsePeriod(strings.TrimSpace(r.URL.Query().Get("period")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.standingsService.PeriodLeaderboard(ctx, period)
	if err != nil {
		h.logger.WarnContext(ctx, "period standings failed", "period", period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, periodStandingsDTO{
		Period:  string(period),
		Entries: entries,
	})
}

type gameweekStandingsDTO struct {
	Gameweek int                        `json:"gameweek"`
	Entries  []usecase.LeaderboardEntry `json:"entries"`
}

type periodStandingsDTO struct {
	Period  string                     `json:"period"`
	Entries []usecase.LeaderboardEntry `json:"entries"`
}

func parseGameweekPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("gameweek"))
	gameweek, err := strconv.Atoi(raw)
	if err != nil || gameweek <= 0 {
		return 0, fmt.Errorf("%w: gameweek must be a positive integer", usecase.ErrInvalidInput)
	}
	return gameweek, nil
}
