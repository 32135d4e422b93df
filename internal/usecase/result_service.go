package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

// ResultService declares final outcomes for fixtures. Declared results are
// the ground truth for scoring, so writes validate against the fixture
// list before touching the store.
type ResultService struct {
	fixtureRepo fixture.Repository
	resultRepo  result.Repository
	logger      *logging.Logger
}

func NewResultService(fixtureRepo fixture.Repository, resultRepo result.Repository, logger *logging.Logger) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultService{
		fixtureRepo: fixtureRepo,
		resultRepo:  resultRepo,
		logger:      logger,
	}
}

func (s *ResultService) Declare(ctx context.Context, gameweek, fixtureIndex int, rawOutcome string) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Declare")
	defer span.End()

	outcome, ok := pick.ParseOutcome(rawOutcome)
	if !ok {
		return result.Result{}, fmt.Errorf("%w: outcome must be H, D or A, got %q", ErrInvalidInput, rawOutcome)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return result.Result{}, fmt.Errorf("list fixtures: %w", err)
	}
	known := false
	for _, item := range fixtures {
		if item.FixtureIndex == fixtureIndex {
			known = true
			break
		}
	}
	if !known {
		return result.Result{}, fmt.Errorf("%w: fixture %d/%d", ErrNotFound, gameweek, fixtureIndex)
	}

	declared := result.Result{
		Gameweek:     gameweek,
		FixtureIndex: fixtureIndex,
		Outcome:      outcome,
		DeclaredAt:   time.Now().UTC(),
	}
	if err := s.resultRepo.Upsert(ctx, declared); err != nil {
		return result.Result{}, fmt.Errorf("upsert result: %w", err)
	}

	s.logger.InfoContext(ctx, "result declared",
		"gameweek", gameweek,
		"fixture_index", fixtureIndex,
		"outcome", string(outcome),
	)
	return declared, nil
}
