package livescore

import (
	"fmt"
	"strings"
)

type EventKind string

const (
	KindGoal           EventKind = "goal"
	KindGoalDisallowed EventKind = "goal_disallowed"
	KindKickoff        EventKind = "kickoff"
	KindHalfTime       EventKind = "halftime"
	KindFullTime       EventKind = "fulltime"
)

// Event is the single notifiable occurrence derived from one snapshot
// delta. Key is stable for structurally identical inputs, so the dispatch
// layer can enforce at-most-once delivery per key.
type Event struct {
	Kind EventKind
	Key  string
	Goal *Goal
	Half int
}

const maxScorerSlugLen = 30

// ClassifyDelta compares two consecutive snapshots of the same match and
// classifies the change, if any, into at most one event. Checks run in
// strict priority order and the first match wins:
//
//	score decrease > new goal > 1H kickoff > 2H kickoff > half-time > full-time
//
// When several new goals land in one delta only the highest-minute one is
// reported; earlier simultaneous goals are dropped. That matches the live
// product behavior and must not change without product sign-off.
func ClassifyDelta(matchID int64, old, new Snapshot) (Event, bool) {
	if new.HomeScore < old.HomeScore || new.AwayScore < old.AwayScore {
		minute := 0
		if new.Minute != nil {
			minute = *new.Minute
		}
		return Event{
			Kind: KindGoalDisallowed,
			Key:  fmt.Sprintf("goal_disallowed:%d:%d", matchID, minute),
		}, true
	}

	if goal, ok := latestNewGoal(old.Goals, new.Goals); ok {
		return Event{
			Kind: KindGoal,
			Key:  fmt.Sprintf("goal:%d:%s:%d", matchID, NormalizeScorer(goal.Scorer), goal.Minute),
			Goal: &goal,
		}, true
	}

	// A blank-scoreline live observation is treated as first-half kickoff
	// even without an old-status check: the first poll of a match often has
	// no usable old snapshot at all.
	if IsInPlayStatus(new.Status) && new.HomeScore == 0 && new.AwayScore == 0 {
		return Event{
			Kind: KindKickoff,
			Key:  fmt.Sprintf("kickoff:%d:1", matchID),
			Half: 1,
		}, true
	}

	if IsPausedStatus(old.Status) && IsInPlayStatus(new.Status) {
		return Event{
			Kind: KindKickoff,
			Key:  fmt.Sprintf("kickoff:%d:2", matchID),
			Half: 2,
		}, true
	}

	if IsInPlayStatus(old.Status) && NormalizeStatus(new.Status) == StatusPaused {
		return Event{
			Kind: KindHalfTime,
			Key:  fmt.Sprintf("halftime:%d", matchID),
		}, true
	}

	if IsFinishedStatus(new.Status) && !IsFinishedStatus(old.Status) {
		return Event{
			Kind: KindFullTime,
			Key:  fmt.Sprintf("ft:%d", matchID),
		}, true
	}

	return Event{}, false
}

func latestNewGoal(oldGoals, newGoals []Goal) (Goal, bool) {
	seen := make(map[string]struct{}, len(oldGoals))
	for _, goal := range oldGoals {
		seen[goalIdentity(goal)] = struct{}{}
	}

	best := Goal{}
	found := false
	for _, goal := range newGoals {
		if _, ok := seen[goalIdentity(goal)]; ok {
			continue
		}
		if !found || goal.Minute > best.Minute {
			best = goal
			found = true
		}
	}

	return best, found
}

func goalIdentity(goal Goal) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(goal.Scorer)), goal.Minute)
}

// NormalizeScorer turns a scorer name into the slug used inside goal event
// keys: lowercased, trimmed, runs of non-alphanumerics collapsed to a
// single underscore, outer underscores trimmed, capped at 30 bytes.
func NormalizeScorer(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var out strings.Builder
	out.Grow(len(lowered))
	pendingSep := false
	for _, r := range lowered {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = out.Len() > 0
			continue
		}
		if pendingSep {
			out.WriteByte('_')
			pendingSep = false
		}
		out.WriteRune(r)
	}

	slug := out.String()
	if len(slug) > maxScorerSlugLen {
		slug = slug[:maxScorerSlugLen]
		slug = strings.TrimRight(slug, "_")
	}
	return slug
}
