package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/domain/user"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

// Period selects the gameweek window a leaderboard aggregates over.
type Period string

const (
	PeriodSeason Period = "season"
	PeriodForm5  Period = "form5"
	PeriodForm10 Period = "form10"
)

func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case PeriodSeason, PeriodForm5, PeriodForm10:
		return Period(raw), nil
	case "":
		return PeriodSeason, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, raw)
	}
}

func (p Period) windowSize() int {
	switch p {
	case PeriodForm5:
		return 5
	case PeriodForm10:
		return 10
	default:
		return 0
	}
}

// GameweekScore is one user's tally for a single gameweek: correct picks
// plus any unicorns earned within the scoping group.
type GameweekScore struct {
	Score    int
	Unicorns int
}

// LeaderboardEntry is one ranked row. Rank follows joint competition
// ranking, so equal scores share a rank and the next distinct score takes
// its 1-based position.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Unicorns    int    `json:"unicorns"`
	Rank        int    `json:"rank"`
	IsTied      bool   `json:"is_tied"`
}

// StandingsService computes ranked views from fixtures, declared results
// and picks. It performs no writes; every call recomputes from the store.
type StandingsService struct {
	fixtureRepo fixture.Repository
	pickRepo    pick.Repository
	resultRepo  result.Repository
	userRepo    user.Repository
	logger      *logging.Logger
}

func NewStandingsService(
	fixtureRepo fixture.Repository,
	pickRepo pick.Repository,
	resultRepo result.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		fixtureRepo: fixtureRepo,
		pickRepo:    pickRepo,
		resultRepo:  resultRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GameweekScores tallies one gameweek for the given member group. Only
// fixtures with a declared result count; a fixture without one contributes
// to neither score nor unicorns. A unicorn is awarded when exactly one
// member of a group of at least three got a fixture correct.
func (s *StandingsService) GameweekScores(ctx context.Context, gameweek int, memberIDs []string) (map[string]GameweekScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GameweekScores")
	defer span.End()

	if gameweek <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be positive", ErrInvalidInput)
	}

	results, err := s.resultRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	picks, err := s.pickRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}

	outcomeByFixture := make(map[int]pick.Outcome, len(results))
	for _, item := range results {
		outcomeByFixture[item.FixtureIndex] = item.Outcome
	}

	scores := make(map[string]GameweekScore, len(memberIDs))
	for _, id := range memberIDs {
		scores[id] = GameweekScore{}
	}

	correctByFixture := make(map[int][]string)
	for _, item := range picks {
		if _, ok := members[item.UserID]; !ok {
			continue
		}
		declared, resulted := outcomeByFixture[item.FixtureIndex]
		if !resulted || item.Outcome != declared {
			continue
		}
		tally := scores[item.UserID]
		tally.Score++
		scores[item.UserID] = tally
		correctByFixture[item.FixtureIndex] = append(correctByFixture[item.FixtureIndex], item.UserID)
	}

	if len(memberIDs) >= 3 {
		for _, correct := range correctByFixture {
			if len(correct) != 1 {
				continue
			}
			tally := scores[correct[0]]
			tally.Unicorns++
			scores[correct[0]] = tally
		}
	}

	return scores, nil
}

// GameweekLeaderboard ranks the whole population for one gameweek.
func (s *StandingsService) GameweekLeaderboard(ctx context.Context, gameweek int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GameweekLeaderboard")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, item := range users {
		ids = append(ids, item.ID)
	}

	scores, err := s.GameweekScores(ctx, gameweek, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, item := range users {
		tally := scores[item.ID]
		entries = append(entries, LeaderboardEntry{
			UserID:      item.ID,
			DisplayName: item.DisplayName,
			Score:       tally.Score,
			Unicorns:    tally.Unicorns,
		})
	}

	RankEntries(entries)
	return entries, nil
}

// PeriodLeaderboard aggregates over a window of completed gameweeks. Form
// windows are strict: a user missing a scored entry for any gameweek in the
// window is excluded entirely, not merely penalized.
func (s *StandingsService) PeriodLeaderboard(ctx context.Context, period Period) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.PeriodLeaderboard")
	defer span.End()

	completed, err := s.CompletedGameweeks(ctx)
	if err != nil {
		return nil, err
	}

	window := completed
	if size := period.windowSize(); size > 0 && len(completed) > size {
		window = completed[len(completed)-size:]
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, item := range users {
		ids = append(ids, item.ID)
	}

	totals := make(map[string]GameweekScore, len(users))
	participated := make(map[string]int, len(users))
	for _, gameweek := range window {
		scores, err := s.GameweekScores(ctx, gameweek, ids)
		if err != nil {
			return nil, err
		}
		picks, err := s.pickRepo.ListByGameweek(ctx, gameweek)
		if err != nil {
			return nil, fmt.Errorf("list picks: %w", err)
		}

		pickedThisWeek := make(map[string]struct{}, len(picks))
		for _, item := range picks {
			pickedThisWeek[item.UserID] = struct{}{}
		}
		for userID := range pickedThisWeek {
			participated[userID]++
		}

		for userID, tally := range scores {
			total := totals[userID]
			total.Score += tally.Score
			total.Unicorns += tally.Unicorns
			totals[userID] = total
		}
	}

	strict := period.windowSize() > 0
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, item := range users {
		if strict && participated[item.ID] < len(window) {
			continue
		}
		total := totals[item.ID]
		entries = append(entries, LeaderboardEntry{
			UserID:      item.ID,
			DisplayName: item.DisplayName,
			Score:       total.Score,
			Unicorns:    total.Unicorns,
		})
	}

	RankEntries(entries)
	return entries, nil
}

// CompletedGameweeks lists, in ascending order, every gameweek whose
// fixtures all have a declared result.
func (s *StandingsService) CompletedGameweeks(ctx context.Context) ([]int, error) {
	gameweeks, err := s.fixtureRepo.ListGameweeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	completed := make([]int, 0, len(gameweeks))
	for _, gameweek := range gameweeks {
		fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gameweek)
		if err != nil {
			return nil, fmt.Errorf("list fixtures for gameweek %d: %w", gameweek, err)
		}
		results, err := s.resultRepo.ListByGameweek(ctx, gameweek)
		if err != nil {
			return nil, fmt.Errorf("list results for gameweek %d: %w", gameweek, err)
		}
		if len(fixtures) > 0 && len(results) >= len(fixtures) {
			completed = append(completed, gameweek)
		}
	}

	sort.Ints(completed)
	return completed, nil
}

// RankEntries sorts entries by score descending with display name as the
// stable tie order, then assigns joint competition ranks in place: equal
// scores share a rank and the next distinct score takes its 1-based
// position, so [10, 10, 8] ranks as [1, 1, 3].
func RankEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	for idx := range entries {
		if idx > 0 && entries[idx].Score == entries[idx-1].Score {
			entries[idx].Rank = entries[idx-1].Rank
		} else {
			entries[idx].Rank = idx + 1
		}
	}

	for start := 0; start < len(entries); {
		end := start
		for end+1 < len(entries) && entries[end+1].Rank == entries[start].Rank {
			end++
		}
		tied := end > start
		for idx := start; idx <= end; idx++ {
			entries[idx].IsTied = tied
		}
		start = end + 1
	}
}
