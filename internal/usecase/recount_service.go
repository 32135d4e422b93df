package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

// RecountService recomputes and persists every mini-league table. It runs
// behind the internal job token, typically after a backfill or a manual
// result correction, and bounds its fan-out with a fixed worker pool.
type RecountService struct {
	leagueRepo  minileague.Repository
	tableWriter minileague.TableWriter
	leagues     *MiniLeagueService
	workers     int
	logger      *logging.Logger
}

func NewRecountService(
	leagueRepo minileague.Repository,
	tableWriter minileague.TableWriter,
	leagues *MiniLeagueService,
	workers int,
	logger *logging.Logger,
) *RecountService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RecountService{
		leagueRepo:  leagueRepo,
		tableWriter: tableWriter,
		leagues:     leagues,
		workers:     workers,
		logger:      logger,
	}
}

// RecountSummary reports one full recount run. A league that failed to
// recompute or persist counts as failed and does not abort the run.
type RecountSummary struct {
	Leagues   int `json:"leagues"`
	Recounted int `json:"recounted"`
	Failed    int `json:"failed"`
}

func (s *RecountService) RecountAll(ctx context.Context) (RecountSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecountService.RecountAll")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return RecountSummary{}, fmt.Errorf("list leagues: %w", err)
	}

	summary := RecountSummary{Leagues: len(leagues)}
	if len(leagues) == 0 {
		return summary, nil
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return RecountSummary{}, fmt.Errorf("create recount pool: %w", err)
	}
	defer workerPool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, league := range leagues {
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			err := s.recountOne(ctx, league.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				s.logger.WarnContext(ctx, "league recount failed", "league_id", league.ID, "error", err)
				return
			}
			summary.Recounted++
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			s.logger.WarnContext(ctx, "league recount submit failed", "league_id", league.ID, "error", submitErr)
		}
	}
	wg.Wait()

	return summary, nil
}

func (s *RecountService) recountOne(ctx context.Context, leagueID string) error {
	rows, err := s.leagues.LeagueTable(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("compute table: %w", err)
	}
	if err := s.tableWriter.ReplaceTable(ctx, leagueID, rows); err != nil {
		return fmt.Errorf("persist table: %w", err)
	}
	return nil
}
