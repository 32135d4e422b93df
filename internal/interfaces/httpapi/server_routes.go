package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gameweeks/{gameweek}/standings", handler.GetGameweekStandings)
	mux.HandleFunc("GET /v1/standings", handler.GetPeriodStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/table", handler.GetLeagueTable)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/gameweeks/{gameweek}/winners", handler.GetGameweekWinners)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/webhooks/score-change", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReceiveScoreChange)))
	mux.Handle("POST /v1/internal/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.DeclareResult)))
	mux.Handle("POST /v1/internal/recount", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecountLeagueTables)))
}
