package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

// GameweekWinner is one co-winner of a mini-league gameweek with the
// tuple that won it.
type GameweekWinner struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Unicorns    int    `json:"unicorns"`
	Shared      bool   `json:"shared"`
}

// MiniLeagueService computes league tables and gameweek winners. Like the
// standings service it is a pure read path; persistence of recomputed
// tables belongs to the recount job.
type MiniLeagueService struct {
	leagueRepo  minileague.Repository
	fixtureRepo fixture.Repository
	standings   *StandingsService
	logger      *logging.Logger
}

func NewMiniLeagueService(
	leagueRepo minileague.Repository,
	fixtureRepo fixture.Repository,
	standings *StandingsService,
	logger *logging.Logger,
) *MiniLeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MiniLeagueService{
		leagueRepo:  leagueRepo,
		fixtureRepo: fixtureRepo,
		standings:   standings,
		logger:      logger,
	}
}

// GameweekWinners determines the winner set of one league gameweek: every
// member matching the top (score, unicorns) tuple. A sole winner is worth
// 3 league points, each co-winner of a tie is worth 1.
func (s *MiniLeagueService) GameweekWinners(ctx context.Context, leagueID string, gameweek int) ([]GameweekWinner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.GameweekWinners")
	defer span.End()

	league, members, err := s.leagueWithMembers(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	start, err := s.resolveStartGameweek(ctx, league)
	if err != nil {
		return nil, err
	}
	if gameweek < start {
		return nil, fmt.Errorf("%w: gameweek %d predates league start %d", ErrInvalidInput, gameweek, start)
	}

	winners, _, err := s.gameweekWinners(ctx, gameweek, members)
	return winners, err
}

// LeagueTable accumulates league points, unicorns and OCP over the
// league's relevant gameweeks and returns the ranked table.
func (s *MiniLeagueService) LeagueTable(ctx context.Context, leagueID string) ([]minileague.TableRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.LeagueTable")
	defer span.End()

	league, members, err := s.leagueWithMembers(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	start, err := s.resolveStartGameweek(ctx, league)
	if err != nil {
		return nil, err
	}

	completed, err := s.standings.CompletedGameweeks(ctx)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(members))
	nameByID := make(map[string]string, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.UserID)
		nameByID[member.UserID] = member.DisplayName
	}

	totals := make(map[string]minileague.TableRow, len(members))
	for _, member := range members {
		totals[member.UserID] = minileague.TableRow{
			LeagueID:    leagueID,
			UserID:      member.UserID,
			DisplayName: member.DisplayName,
		}
	}

	for _, gameweek := range completed {
		if gameweek < start {
			continue
		}

		scores, err := s.standings.GameweekScores(ctx, gameweek, memberIDs)
		if err != nil {
			return nil, err
		}
		for userID, tally := range scores {
			row := totals[userID]
			row.OCP += tally.Score
			row.Unicorns += tally.Unicorns
			totals[userID] = row
		}

		winners := winnersFromScores(memberIDs, nameByID, scores)
		points := 3
		if len(winners) > 1 {
			points = 1
		}
		for _, winner := range winners {
			row := totals[winner.UserID]
			row.LeaguePoints += points
			totals[winner.UserID] = row
		}
	}

	rows := make([]minileague.TableRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, row)
	}
	RankLeagueTable(rows)
	return rows, nil
}

func (s *MiniLeagueService) leagueWithMembers(ctx context.Context, leagueID string) (minileague.League, []minileague.Member, error) {
	if strings.TrimSpace(leagueID) == "" {
		return minileague.League{}, nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	league, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return minileague.League{}, nil, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("list members: %w", err)
	}

	return league, members, nil
}

func (s *MiniLeagueService) gameweekWinners(ctx context.Context, gameweek int, members []minileague.Member) ([]GameweekWinner, map[string]GameweekScore, error) {
	memberIDs := make([]string, 0, len(members))
	nameByID := make(map[string]string, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.UserID)
		nameByID[member.UserID] = member.DisplayName
	}

	scores, err := s.standings.GameweekScores(ctx, gameweek, memberIDs)
	if err != nil {
		return nil, nil, err
	}

	return winnersFromScores(memberIDs, nameByID, scores), scores, nil
}

// winnersFromScores picks every member matching the top (score, unicorns)
// tuple. A league where nobody scored still has winners on (0, 0); callers
// that want to suppress that case filter on Score themselves.
func winnersFromScores(memberIDs []string, nameByID map[string]string, scores map[string]GameweekScore) []GameweekWinner {
	if len(memberIDs) == 0 {
		return nil
	}

	best := GameweekScore{Score: -1}
	for _, userID := range memberIDs {
		tally := scores[userID]
		if tally.Score > best.Score || (tally.Score == best.Score && tally.Unicorns > best.Unicorns) {
			best = tally
		}
	}

	winners := make([]GameweekWinner, 0, 1)
	for _, userID := range memberIDs {
		tally := scores[userID]
		if tally.Score == best.Score && tally.Unicorns == best.Unicorns {
			winners = append(winners, GameweekWinner{
				UserID:      userID,
				DisplayName: nameByID[userID],
				Score:       tally.Score,
				Unicorns:    tally.Unicorns,
			})
		}
	}

	shared := len(winners) > 1
	for idx := range winners {
		winners[idx].Shared = shared
	}

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].DisplayName < winners[j].DisplayName
	})
	return winners
}

// resolveStartGameweek decides which gameweeks count for a league, trying
// in order: explicit override, stored start field, inference from the
// creation timestamp against gameweek deadlines, then one past the latest
// completed gameweek. The result must be applied consistently to the table
// and to anything else that reads "since when does this league count".
func (s *MiniLeagueService) resolveStartGameweek(ctx context.Context, league minileague.League) (int, error) {
	override, ok, err := s.leagueRepo.GetStartOverride(ctx, league.ID)
	if err != nil {
		return 0, fmt.Errorf("get start override: %w", err)
	}
	if ok && override > 0 {
		return override, nil
	}

	if league.StartGameweek > 0 {
		return league.StartGameweek, nil
	}

	gameweeks, err := s.fixtureRepo.ListGameweeks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list gameweeks: %w", err)
	}
	sort.Ints(gameweeks)

	for _, gameweek := range gameweeks {
		fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gameweek)
		if err != nil {
			return 0, fmt.Errorf("list fixtures for gameweek %d: %w", gameweek, err)
		}
		deadline, ok := fixture.GameweekDeadline(fixtures)
		if !ok {
			continue
		}
		if !deadline.Before(league.CreatedAt) {
			return gameweek, nil
		}
	}

	completed, err := s.standings.CompletedGameweeks(ctx)
	if err != nil {
		return 0, err
	}
	if len(completed) == 0 {
		return 1, nil
	}
	return completed[len(completed)-1] + 1, nil
}

// RankLeagueTable sorts rows by the four-key tie-break contract, league
// points desc then unicorns desc then OCP desc then name asc, and assigns
// joint competition ranks in place.
func RankLeagueTable(rows []minileague.TableRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LeaguePoints != rows[j].LeaguePoints {
			return rows[i].LeaguePoints > rows[j].LeaguePoints
		}
		if rows[i].Unicorns != rows[j].Unicorns {
			return rows[i].Unicorns > rows[j].Unicorns
		}
		if rows[i].OCP != rows[j].OCP {
			return rows[i].OCP > rows[j].OCP
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})

	sameKey := func(a, b minileague.TableRow) bool {
		return a.LeaguePoints == b.LeaguePoints && a.Unicorns == b.Unicorns && a.OCP == b.OCP
	}

	for idx := range rows {
		if idx > 0 && sameKey(rows[idx], rows[idx-1]) {
			rows[idx].Rank = rows[idx-1].Rank
		} else {
			rows[idx].Rank = idx + 1
		}
	}

	for start := 0; start < len(rows); {
		end := start
		for end+1 < len(rows) && rows[end+1].Rank == rows[start].Rank {
			end++
		}
		tied := end > start
		for idx := start; idx <= end; idx++ {
			rows[idx].IsTied = tied
		}
		start = end + 1
	}
}
