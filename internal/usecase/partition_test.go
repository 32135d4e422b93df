package usecase

import (
	"testing"

	"github.com/totl-app/totl-api/internal/domain/pick"
)

func TestPartitionByOutcome_Complete(t *testing.T) {
	t.Parallel()

	recipients := []string{"u1", "u2", "u3", "u4"}
	picks := map[string]pick.Outcome{
		"u1": pick.OutcomeHome,
		"u2": pick.OutcomeAway,
		"u4": pick.OutcomeHome,
	}

	groups := PartitionByOutcome(recipients, picks, pick.OutcomeHome)

	if len(groups.OnTrack) != 2 || groups.OnTrack[0] != "u1" || groups.OnTrack[1] != "u4" {
		t.Fatalf("unexpected ontrack: %v", groups.OnTrack)
	}
	if len(groups.OffTrack) != 1 || groups.OffTrack[0] != "u2" {
		t.Fatalf("unexpected offtrack: %v", groups.OffTrack)
	}
	if len(groups.NoPick) != 1 || groups.NoPick[0] != "u3" {
		t.Fatalf("unexpected nopick: %v", groups.NoPick)
	}
	if total := len(groups.OnTrack) + len(groups.OffTrack) + len(groups.NoPick); total != len(recipients) {
		t.Fatalf("partition must cover every recipient exactly once, got %d of %d", total, len(recipients))
	}
}

func TestPartitionByResult_TwoValuedGrouping(t *testing.T) {
	t.Parallel()

	recipients := []string{"u1", "u2", "u3"}
	picks := map[string]pick.Outcome{
		"u1": pick.OutcomeDraw,
		"u2": pick.OutcomeHome,
	}

	groups := PartitionByResult(recipients, picks, pick.OutcomeDraw)

	if len(groups.Correct) != 1 || groups.Correct[0] != "u1" {
		t.Fatalf("unexpected correct: %v", groups.Correct)
	}
	if len(groups.Wrong) != 1 || groups.Wrong[0] != "u2" {
		t.Fatalf("unexpected wrong: %v", groups.Wrong)
	}
	if len(groups.NoPick) != 1 || groups.NoPick[0] != "u3" {
		t.Fatalf("unexpected nopick: %v", groups.NoPick)
	}
}

func TestCorrectPercentage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		correct, withPicks, want int
	}{
		{0, 0, 0},
		{1, 5, 20},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := CorrectPercentage(tc.correct, tc.withPicks); got != tc.want {
			t.Fatalf("CorrectPercentage(%d, %d) = %d, want %d", tc.correct, tc.withPicks, got, tc.want)
		}
	}
}

func TestFullTimePhrase_Boundary(t *testing.T) {
	t.Parallel()

	if got := FullTimePhrase(20); got != "Only 20% got this correct" {
		t.Fatalf("unexpected phrase at 20: %q", got)
	}
	if got := FullTimePhrase(21); got != "21% got this correct" {
		t.Fatalf("unexpected phrase at 21: %q", got)
	}
}
