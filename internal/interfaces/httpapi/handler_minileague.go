package httpapi

import (
	"net/http"
	"strings"

	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/usecase"
)

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.miniLeagueService.LeagueTable(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "league table failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueTableRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, tableRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, leagueTableDTO{
		LeagueID: leagueID,
		Rows:     items,
	})
}

func (h *Handler) GetGameweekWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekWinners")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	gameweek, err := parseGameweekPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	winners, err := h.miniLeagueService.GameweekWinners(ctx, leagueID, gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "gameweek winners failed", "league_id", leagueID, "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekWinnersDTO{
		LeagueID: leagueID,
		Gameweek: gameweek,
		Winners:  winners,
	})
}

type leagueTableDTO struct {
	LeagueID string              `json:"league_id"`
	Rows     []leagueTableRowDTO `json:"rows"`
}

type leagueTableRowDTO struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	LeaguePoints int    `json:"league_points"`
	Unicorns     int    `json:"unicorns"`
	OCP          int    `json:"ocp"`
	Rank         int    `json:"rank"`
	IsTied       bool   `json:"is_tied"`
}

func tableRowToDTO(row minileague.TableRow) leagueTableRowDTO {
	return leagueTableRowDTO{
		UserID:       row.UserID,
		DisplayName:  row.DisplayName,
		LeaguePoints: row.LeaguePoints,
		Unicorns:     row.Unicorns,
		OCP:          row.OCP,
		Rank:         row.Rank,
		IsTied:       row.IsTied,
	}
}

type gameweekWinnersDTO struct {
	LeagueID string                   `json:"league_id"`
	Gameweek int                      `json:"gameweek"`
	Winners  []usecase.GameweekWinner `json:"winners"`
}
