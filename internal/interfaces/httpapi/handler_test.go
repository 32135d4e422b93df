package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/totl-app/totl-api/internal/infrastructure/push"
	"github.com/totl-app/totl-api/internal/infrastructure/repository/memory"
	"github.com/totl-app/totl-api/internal/platform/logging"
	"github.com/totl-app/totl-api/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()

	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())
	pickRepo := memory.NewPickRepository(memory.SeedPicks())
	resultRepo := memory.NewResultRepository(memory.SeedResults())
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	leagueRepo := memory.NewMiniLeagueRepository(memory.SeedMiniLeagues(), memory.SeedMiniLeagueMembers(), nil)

	standings := usecase.NewStandingsService(fixtureRepo, pickRepo, resultRepo, userRepo, logger)
	leagues := usecase.NewMiniLeagueService(leagueRepo, fixtureRepo, standings, logger)
	webhooks := usecase.NewScoreWebhookService(fixtureRepo, pickRepo, resultRepo, userRepo, push.NewLogDispatcher(logger), standings, logger)
	results := usecase.NewResultService(fixtureRepo, resultRepo, logger)
	recounts := usecase.NewRecountService(leagueRepo, leagueRepo, leagues, 2, logger)

	handler := NewHandler(standings, leagues, webhooks, results, recounts, logger)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_GameweekStandings(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/gameweeks/1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	entries, ok := data["entries"].([]any)
	if !ok || len(entries) == 0 {
		t.Fatalf("expected non-empty entries, got %v", data["entries"])
	}

	top, _ := entries[0].(map[string]any)
	if got, _ := top["rank"].(float64); got != 1 {
		t.Fatalf("expected top rank 1, got %v", top["rank"])
	}
	if got, _ := top["score"].(float64); got != 2 {
		t.Fatalf("expected top score 2, got %v", top["score"])
	}
	if tied, _ := top["is_tied"].(bool); !tied {
		t.Fatalf("expected top entry tied, Amara and Billy both scored 2")
	}
}

func TestRouter_GameweekStandingsRejectsBadPath(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/gameweeks/abc/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_PeriodStandingsRejectsUnknownPeriod(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings?period=form99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_LeagueTable(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.LeagueIDTheOffice+"/table", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	rows, ok := data["rows"].([]any)
	if !ok || len(rows) != 4 {
		t.Fatalf("expected 4 table rows, got %v", data["rows"])
	}
}

func TestRouter_LeagueTableUnknownLeague(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/ml-nobody/table", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_InternalRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/v1/internal/webhooks/score-change",
		"/v1/internal/results",
		"/v1/internal/recount",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %s, got %d", path, rec.Code)
		}
	}
}

func TestRouter_DeclareResult(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"gameweek":2,"fixture_index":0,"outcome":"H"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/results", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["outcome"].(string); got != "H" {
		t.Fatalf("expected declared outcome H, got %v", data["outcome"])
	}
}

func TestRouter_DeclareResultRejectsBadOutcome(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"gameweek":2,"fixture_index":0,"outcome":"X"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/results", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_ScoreChangeWebhookSkipsUnknownMatch(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"record":{"api_match_id":99999,"home_score":1,"away_score":0,"status":"IN_PLAY"},"old_record":{"api_match_id":99999,"home_score":0,"away_score":0,"status":"IN_PLAY"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/webhooks/score-change", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if processed, _ := data["processed"].(bool); processed {
		t.Fatalf("expected webhook skip for unknown match, got %v", data)
	}
}

func TestRouter_Recount(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/recount", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["recounted"].(float64); got != 1 {
		t.Fatalf("expected 1 recounted league, got %v", data["recounted"])
	}
}
