package livescore

import "testing"

func TestResolveScoringSide_TeamIDWins(t *testing.T) {
	t.Parallel()

	goal := Goal{Scorer: "J. Smith", TeamID: "t-away", Team: "home"}
	if side := ResolveScoringSide(goal, "t-home", "t-away", "Home FC", "Away FC"); side != SideAway {
		t.Fatalf("team id must win over the side label, got %v", side)
	}
}

func TestResolveScoringSide_SideLabel(t *testing.T) {
	t.Parallel()

	if side := ResolveScoringSide(Goal{Team: "home"}, "", "", "Home FC", "Away FC"); side != SideHome {
		t.Fatalf("expected home, got %v", side)
	}
	if side := ResolveScoringSide(Goal{Team: "away"}, "", "", "Home FC", "Away FC"); side != SideAway {
		t.Fatalf("expected away, got %v", side)
	}
}

func TestResolveScoringSide_NameFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  Side
	}{
		{"Arsenal", SideHome},
		{"arsenal fc", SideHome},
		{"Spurs", SideAway},
		{"Chelsea", SideUnknown},
		{"", SideUnknown},
	}
	for _, tc := range cases {
		got := ResolveScoringSide(Goal{Team: tc.label}, "", "", "Arsenal FC", "Tottenham Spurs")
		if got != tc.want {
			t.Fatalf("label %q: want %v, got %v", tc.label, tc.want, got)
		}
	}
}

func TestResolveScoringSide_AmbiguousName(t *testing.T) {
	t.Parallel()

	// "United" matches both names, so the heuristic refuses to guess.
	got := ResolveScoringSide(Goal{Team: "United"}, "", "", "Leeds United", "Newcastle United")
	if got != SideUnknown {
		t.Fatalf("ambiguous label must stay unknown, got %v", got)
	}
}

func TestNormalizeStatusDefaults(t *testing.T) {
	t.Parallel()

	if NormalizeStatus("  ") != StatusScheduled {
		t.Fatal("blank status should normalize to scheduled")
	}
	if !IsFinishedStatus("ft") || !IsFinishedStatus("Finished") {
		t.Fatal("ft and finished are both terminal")
	}
	if !IsPausedStatus("HALF_TIME") {
		t.Fatal("half_time counts as paused")
	}
}
