package livescore

import "strings"

const (
	StatusScheduled = "SCHEDULED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusHalfTime  = "HALF_TIME"
	StatusFinished  = "FINISHED"
	StatusFullTime  = "FT"
)

// Goal is one goal entry from the live score feed.
type Goal struct {
	Scorer  string `json:"scorer"`
	Minute  int    `json:"minute"`
	Team    string `json:"team"`
	TeamID  string `json:"team_id"`
	OwnGoal bool   `json:"own_goal"`
}

// RedCard is one sending-off entry from the live score feed.
type RedCard struct {
	Player string `json:"player"`
	Minute int    `json:"minute"`
	Team   string `json:"team"`
}

// Snapshot is the observed state of one match at a point in time. The
// service never stores snapshots; it only compares the two it is handed.
type Snapshot struct {
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Status    string    `json:"status"`
	Minute    *int      `json:"minute"`
	Goals     []Goal    `json:"goals"`
	RedCards  []RedCard `json:"red_cards"`
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsInPlayStatus(status string) bool {
	return NormalizeStatus(status) == StatusInPlay
}

func IsPausedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPaused, StatusHalfTime:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusFullTime:
		return true
	default:
		return false
	}
}
