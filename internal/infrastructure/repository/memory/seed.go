package memory

import (
	"time"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/domain/user"
)

const LeagueIDTheOffice = "ml-the-office"

func SeedUsers() []user.User {
	return []user.User{
		{ID: "usr-amara", DisplayName: "Amara", NotificationsEnabled: true},
		{ID: "usr-billy", DisplayName: "Billy", NotificationsEnabled: true},
		{ID: "usr-chidi", DisplayName: "Chidi", NotificationsEnabled: true},
		{ID: "usr-dora", DisplayName: "Dora", NotificationsEnabled: true},
		{ID: "usr-eli", DisplayName: "Eli", NotificationsEnabled: false},
	}
}

func SeedFixtures() []fixture.Fixture {
	kickoff := func(day, hour int) time.Time {
		return time.Date(2026, time.August, day, hour, 0, 0, 0, time.UTC)
	}

	return []fixture.Fixture{
		{ID: "fx-1-0", Gameweek: 1, FixtureIndex: 0, HomeTeam: "Arsenal", AwayTeam: "Liverpool", HomeTeamID: "tm-ars", AwayTeamID: "tm-liv", APIMatchID: 5001, KickoffAt: kickoff(15, 12)},
		{ID: "fx-1-1", Gameweek: 1, FixtureIndex: 1, HomeTeam: "Chelsea", AwayTeam: "Spurs", HomeTeamID: "tm-che", AwayTeamID: "tm-tot", APIMatchID: 5002, KickoffAt: kickoff(15, 15)},
		{ID: "fx-1-2", Gameweek: 1, FixtureIndex: 2, HomeTeam: "Everton", AwayTeam: "Fulham", HomeTeamID: "tm-eve", AwayTeamID: "tm-ful", APIMatchID: 5003, KickoffAt: kickoff(16, 14)},
		{ID: "fx-2-0", Gameweek: 2, FixtureIndex: 0, HomeTeam: "Liverpool", AwayTeam: "Chelsea", HomeTeamID: "tm-liv", AwayTeamID: "tm-che", APIMatchID: 5004, KickoffAt: kickoff(22, 12)},
		{ID: "fx-2-1", Gameweek: 2, FixtureIndex: 1, HomeTeam: "Spurs", AwayTeam: "Arsenal", HomeTeamID: "tm-tot", AwayTeamID: "tm-ars", APIMatchID: 5005, KickoffAt: kickoff(22, 15)},
		{ID: "fx-2-2", Gameweek: 2, FixtureIndex: 2, HomeTeam: "Fulham", AwayTeam: "Everton", HomeTeamID: "tm-ful", AwayTeamID: "tm-eve", APIMatchID: 5006, KickoffAt: kickoff(23, 14)},
	}
}

func SeedPicks() []pick.Pick {
	return []pick.Pick{
		{UserID: "usr-amara", Gameweek: 1, FixtureIndex: 0, Outcome: pick.OutcomeHome},
		{UserID: "usr-amara", Gameweek: 1, FixtureIndex: 1, Outcome: pick.OutcomeDraw},
		{UserID: "usr-amara", Gameweek: 1, FixtureIndex: 2, Outcome: pick.OutcomeAway},
		{UserID: "usr-billy", Gameweek: 1, FixtureIndex: 0, Outcome: pick.OutcomeAway},
		{UserID: "usr-billy", Gameweek: 1, FixtureIndex: 1, Outcome: pick.OutcomeDraw},
		{UserID: "usr-billy", Gameweek: 1, FixtureIndex: 2, Outcome: pick.OutcomeHome},
		{UserID: "usr-chidi", Gameweek: 1, FixtureIndex: 0, Outcome: pick.OutcomeHome},
		{UserID: "usr-chidi", Gameweek: 1, FixtureIndex: 1, Outcome: pick.OutcomeHome},
		{UserID: "usr-dora", Gameweek: 1, FixtureIndex: 1, Outcome: pick.OutcomeAway},
		{UserID: "usr-amara", Gameweek: 2, FixtureIndex: 0, Outcome: pick.OutcomeHome},
		{UserID: "usr-billy", Gameweek: 2, FixtureIndex: 0, Outcome: pick.OutcomeDraw},
		{UserID: "usr-chidi", Gameweek: 2, FixtureIndex: 1, Outcome: pick.OutcomeAway},
	}
}

func SeedResults() []result.Result {
	declared := time.Date(2026, time.August, 16, 18, 0, 0, 0, time.UTC)
	return []result.Result{
		{Gameweek: 1, FixtureIndex: 0, Outcome: pick.OutcomeHome, DeclaredAt: declared},
		{Gameweek: 1, FixtureIndex: 1, Outcome: pick.OutcomeDraw, DeclaredAt: declared},
		{Gameweek: 1, FixtureIndex: 2, Outcome: pick.OutcomeHome, DeclaredAt: declared},
	}
}

func SeedMiniLeagues() []minileague.League {
	return []minileague.League{
		{
			ID:            LeagueIDTheOffice,
			Name:          "The Office",
			StartGameweek: 1,
			CreatedAt:     time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMiniLeagueMembers() []minileague.Member {
	return []minileague.Member{
		{LeagueID: LeagueIDTheOffice, UserID: "usr-amara", DisplayName: "Amara"},
		{LeagueID: LeagueIDTheOffice, UserID: "usr-billy", DisplayName: "Billy"},
		{LeagueID: LeagueIDTheOffice, UserID: "usr-chidi", DisplayName: "Chidi"},
		{LeagueID: LeagueIDTheOffice, UserID: "usr-dora", DisplayName: "Dora"},
	}
}
