package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/livescore"
	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/domain/user"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

// ScoreWebhookService turns one score-change webhook invocation into at
// most one notification event, partitioned per recipient group. It holds no
// state between invocations; idempotency lives entirely in the dispatch
// primitive's ledger, keyed by the derived event key.
type ScoreWebhookService struct {
	fixtureRepo fixture.Repository
	pickRepo    pick.Repository
	resultRepo  result.Repository
	userRepo    user.Repository
	dispatcher  notification.Dispatcher
	standings   *StandingsService
	logger      *logging.Logger
}

func NewScoreWebhookService(
	fixtureRepo fixture.Repository,
	pickRepo pick.Repository,
	resultRepo result.Repository,
	userRepo user.Repository,
	dispatcher notification.Dispatcher,
	standings *StandingsService,
	logger *logging.Logger,
) *ScoreWebhookService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoreWebhookService{
		fixtureRepo: fixtureRepo,
		pickRepo:    pickRepo,
		resultRepo:  resultRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		standings:   standings,
		logger:      logger,
	}
}

// WebhookSummary reports what one invocation did. Skipped invocations are
// successful no-ops; the caller acknowledges them so the trigger does not
// retry forever.
type WebhookSummary struct {
	Processed    bool   `json:"processed"`
	Reason       string `json:"reason,omitempty"`
	EventKind    string `json:"event_kind,omitempty"`
	EventKey     string `json:"event_key,omitempty"`
	Accepted     int    `json:"accepted"`
	Failed       int    `json:"failed"`
	GroupsSent   int    `json:"groups_sent"`
	GroupsFailed int    `json:"groups_failed"`
}

func skipped(reason string) WebhookSummary {
	return WebhookSummary{Processed: false, Reason: reason}
}

func (s *ScoreWebhookService) Process(ctx context.Context, payload []byte) (WebhookSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreWebhookService.Process")
	defer span.End()

	change, ok, err := AdaptTriggerPayload(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "unparseable webhook payload", "error", err)
		return skipped("unparseable payload"), nil
	}
	if !ok || change.APIMatchID == 0 {
		return skipped("missing match id"), nil
	}

	fx, exists, err := s.fixtureRepo.GetByAPIMatchID(ctx, change.APIMatchID)
	if err != nil {
		return WebhookSummary{}, fmt.Errorf("get fixture by api match id: %w", err)
	}
	if !exists {
		s.logger.InfoContext(ctx, "webhook for unknown fixture", "api_match_id", change.APIMatchID)
		return skipped("unknown fixture"), nil
	}

	event, ok := livescore.ClassifyDelta(change.APIMatchID, change.Old, change.New)
	if !ok {
		return skipped("no notifiable change"), nil
	}

	var picks []pick.Pick
	var recipients []user.User
	reads := pool.New().WithContext(ctx).WithCancelOnError()
	reads.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListByFixture(ctx, fx.Gameweek, fx.FixtureIndex)
		if err != nil {
			return fmt.Errorf("list picks by fixture: %w", err)
		}
		picks = items
		return nil
	})
	reads.Go(func(ctx context.Context) error {
		items, err := s.userRepo.ListNotifiable(ctx)
		if err != nil {
			return fmt.Errorf("list notifiable users: %w", err)
		}
		recipients = items
		return nil
	})
	if err := reads.Wait(); err != nil {
		return WebhookSummary{}, err
	}

	pickByUser := make(map[string]pick.Outcome, len(picks))
	for _, item := range picks {
		pickByUser[item.UserID] = item.Outcome
	}
	recipientIDs := make([]string, 0, len(recipients))
	for _, item := range recipients {
		recipientIDs = append(recipientIDs, item.ID)
	}

	dispatches, err := s.buildDispatches(ctx, fx, event, change.New, recipientIDs, pickByUser)
	if err != nil {
		return WebhookSummary{}, err
	}

	summary := s.sendAll(ctx, dispatches)
	summary.Processed = true
	summary.EventKind = string(event.Kind)
	summary.EventKey = event.Key
	return summary, nil
}

func (s *ScoreWebhookService) buildDispatches(
	ctx context.Context,
	fx fixture.Fixture,
	event livescore.Event,
	current livescore.Snapshot,
	recipientIDs []string,
	pickByUser map[string]pick.Outcome,
) ([]notification.Dispatch, error) {
	if event.Kind == livescore.KindFullTime {
		return s.buildFullTimeDispatches(ctx, fx, event, current, recipientIDs, pickByUser)
	}

	outcome := pick.OutcomeFromScore(current.HomeScore, current.AwayScore)
	groups := PartitionByOutcome(recipientIDs, pickByUser, outcome)
	title, body := s.renderLiveMessage(fx, event, current)

	out := make([]notification.Dispatch, 0, 3)
	appendGroup := func(suffix, bodySuffix string, userIDs []string) {
		if len(userIDs) == 0 {
			return
		}
		out = append(out, notification.Dispatch{
			NotificationKey: string(event.Kind),
			EventID:         event.Key + suffix,
			UserIDs:         userIDs,
			Title:           title,
			Body:            body + bodySuffix,
			Data:            dispatchData(fx),
			GroupingKey:     strconv.FormatInt(fx.APIMatchID, 10),
		})
	}
	appendGroup(":ontrack", " ✅", groups.OnTrack)
	appendGroup(":offtrack", " ❌", groups.OffTrack)
	appendGroup(":nopick", "", groups.NoPick)

	return out, nil
}

func (s *ScoreWebhookService) buildFullTimeDispatches(
	ctx context.Context,
	fx fixture.Fixture,
	event livescore.Event,
	current livescore.Snapshot,
	recipientIDs []string,
	pickByUser map[string]pick.Outcome,
) ([]notification.Dispatch, error) {
	declared, hasResult, err := s.resultRepo.GetByFixture(ctx, fx.Gameweek, fx.FixtureIndex)
	if err != nil {
		return nil, fmt.Errorf("get declared result: %w", err)
	}
	finalOutcome := pick.OutcomeFromScore(current.HomeScore, current.AwayScore)
	if hasResult {
		finalOutcome = declared.Outcome
	}

	groups := PartitionByResult(recipientIDs, pickByUser, finalOutcome)
	percentage := CorrectPercentage(len(groups.Correct), len(groups.Correct)+len(groups.Wrong))
	phrase := FullTimePhrase(percentage)
	title := fmt.Sprintf("🏁 Full-time: %s %d-%d %s", fx.HomeTeam, current.HomeScore, current.AwayScore, fx.AwayTeam)

	out := make([]notification.Dispatch, 0, 3)
	appendGroup := func(suffix, body string, userIDs []string) {
		if len(userIDs) == 0 {
			return
		}
		out = append(out, notification.Dispatch{
			NotificationKey: string(event.Kind),
			EventID:         event.Key + suffix,
			UserIDs:         userIDs,
			Title:           title,
			Body:            body,
			Data:            dispatchData(fx),
			GroupingKey:     strconv.FormatInt(fx.APIMatchID, 10),
		})
	}
	appendGroup(":correct", phrase+", and you called it ✅", groups.Correct)
	appendGroup(":wrong", phrase+" ❌", groups.Wrong)

	gwDispatches, err := s.buildGameweekCompleteDispatches(ctx, fx, recipientIDs)
	if err != nil {
		return nil, err
	}

	return append(out, gwDispatches...), nil
}

// buildGameweekCompleteDispatches fires once the full-time fixture was the
// last of its gameweek to gain a declared result. Users are grouped by
// their own gameweek score so the body can speak to their tally; the keyed
// dispatch ledger absorbs replays.
func (s *ScoreWebhookService) buildGameweekCompleteDispatches(
	ctx context.Context,
	fx fixture.Fixture,
	recipientIDs []string,
) ([]notification.Dispatch, error) {
	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, fx.Gameweek)
	if err != nil {
		return nil, fmt.Errorf("list fixtures for gameweek completion: %w", err)
	}
	results, err := s.resultRepo.ListByGameweek(ctx, fx.Gameweek)
	if err != nil {
		return nil, fmt.Errorf("list results for gameweek completion: %w", err)
	}
	if len(fixtures) == 0 || len(results) < len(fixtures) {
		return nil, nil
	}

	scores, err := s.standings.GameweekScores(ctx, fx.Gameweek, recipientIDs)
	if err != nil {
		return nil, fmt.Errorf("compute gameweek scores for completion: %w", err)
	}

	byScore := make(map[int][]string)
	for _, userID := range recipientIDs {
		byScore[scores[userID].Score] = append(byScore[scores[userID].Score], userID)
	}

	out := make([]notification.Dispatch, 0, len(byScore))
	for score, userIDs := range byScore {
		out = append(out, notification.Dispatch{
			NotificationKey: "gw_complete",
			EventID:         fmt.Sprintf("gw_complete:%d:%d", fx.Gameweek, score),
			UserIDs:         userIDs,
			Title:           fmt.Sprintf("Gameweek %d complete", fx.Gameweek),
			Body:            fmt.Sprintf("You got %d of %d correct this week", score, len(fixtures)),
			Data:            map[string]string{"gameweek": strconv.Itoa(fx.Gameweek)},
			GroupingKey:     "gw:" + strconv.Itoa(fx.Gameweek),
		})
	}
	return out, nil
}

func (s *ScoreWebhookService) renderLiveMessage(fx fixture.Fixture, event livescore.Event, current livescore.Snapshot) (string, string) {
	scoreline := fmt.Sprintf("%s %d-%d %s", fx.HomeTeam, current.HomeScore, current.AwayScore, fx.AwayTeam)

	switch event.Kind {
	case livescore.KindGoal:
		goal := event.Goal
		teamName := scoringTeamName(fx, *goal)
		return "⚽ " + scoreline, fmt.Sprintf("%s %d' for %s!", goal.Scorer, goal.Minute, teamName)
	case livescore.KindGoalDisallowed:
		return "🚫 Goal disallowed", scoreline
	case livescore.KindKickoff:
		if event.Half == 2 {
			return "🟢 Second half under way", scoreline
		}
		return "🟢 Kickoff!", fmt.Sprintf("%s vs %s", fx.HomeTeam, fx.AwayTeam)
	case livescore.KindHalfTime:
		return "⏸️ Half-time", scoreline
	default:
		return scoreline, ""
	}
}

func scoringTeamName(fx fixture.Fixture, goal livescore.Goal) string {
	switch livescore.ResolveScoringSide(goal, fx.HomeTeamID, fx.AwayTeamID, fx.HomeTeam, fx.AwayTeam) {
	case livescore.SideHome:
		return fx.HomeTeam
	case livescore.SideAway:
		return fx.AwayTeam
	default:
		return goal.Team
	}
}

func dispatchData(fx fixture.Fixture) map[string]string {
	return map[string]string{
		"gameweek":      strconv.Itoa(fx.Gameweek),
		"fixture_index": strconv.Itoa(fx.FixtureIndex),
		"api_match_id":  strconv.FormatInt(fx.APIMatchID, 10),
	}
}

// sendAll dispatches every group concurrently. A failed group is logged and
// omitted from the accepted tally; groups that already succeeded are not
// rolled back. The next poll re-derives the event and the ledger dedupes.
func (s *ScoreWebhookService) sendAll(ctx context.Context, dispatches []notification.Dispatch) WebhookSummary {
	summary := WebhookSummary{}
	if len(dispatches) == 0 {
		return summary
	}

	receipts := make([]notification.Receipt, len(dispatches))
	failures := make([]error, len(dispatches))

	senders := pool.New().WithMaxGoroutines(len(dispatches))
	for idx, item := range dispatches {
		senders.Go(func() {
			receipt, err := s.dispatcher.Send(ctx, item)
			if err != nil {
				failures[idx] = err
				return
			}
			receipts[idx] = receipt
		})
	}
	senders.Wait()

	for idx := range dispatches {
		if failures[idx] != nil {
			summary.GroupsFailed++
			s.logger.WarnContext(ctx, "notification group dispatch failed",
				"event_id", dispatches[idx].EventID,
				"recipients", len(dispatches[idx].UserIDs),
				"error", failures[idx],
			)
			continue
		}
		summary.GroupsSent++
		summary.Accepted += receipts[idx].Accepted
		summary.Failed += receipts[idx].Failed
	}

	return summary
}
