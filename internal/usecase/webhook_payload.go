package usecase

import (
	"github.com/bytedance/sonic"
	"github.com/totl-app/totl-api/internal/domain/livescore"
)

// ScoreChange is the normalized form of one webhook invocation: the match
// it concerns plus the before/after snapshots. Old is the zero snapshot
// when the trigger carried no previous row.
type ScoreChange struct {
	APIMatchID int64
	Old        livescore.Snapshot
	New        livescore.Snapshot
}

type scoreRecord struct {
	APIMatchID int64               `json:"api_match_id"`
	HomeScore  int                 `json:"home_score"`
	AwayScore  int                 `json:"away_score"`
	Status     string              `json:"status"`
	Minute     *int                `json:"minute"`
	Goals      []livescore.Goal    `json:"goals"`
	RedCards   []livescore.RedCard `json:"red_cards"`
}

func (r scoreRecord) snapshot() livescore.Snapshot {
	return livescore.Snapshot{
		HomeScore: r.HomeScore,
		AwayScore: r.AwayScore,
		Status:    r.Status,
		Minute:    r.Minute,
		Goals:     r.Goals,
		RedCards:  r.RedCards,
	}
}

type triggerEnvelope struct {
	Table     string       `json:"table"`
	Record    *scoreRecord `json:"record"`
	OldRecord *scoreRecord `json:"old_record"`
	New       *scoreRecord `json:"new"`
	Old       *scoreRecord `json:"old"`
}

// AdaptTriggerPayload accepts the three payload shapes emitted by the
// score-change trigger across provider versions:
//
//  1. {"table": ..., "record": {...}, "old_record": {...}}
//  2. {"new": {...}, "old": {...}}
//  3. a bare record object carrying api_match_id at the top level
//
// The second return is false when no shape yields a match identifier.
func AdaptTriggerPayload(payload []byte) (ScoreChange, bool, error) {
	var envelope triggerEnvelope
	if err := sonic.Unmarshal(payload, &envelope); err != nil {
		return ScoreChange{}, false, err
	}

	switch {
	case envelope.Record != nil:
		return changeFromRecords(*envelope.Record, envelope.OldRecord)
	case envelope.New != nil:
		return changeFromRecords(*envelope.New, envelope.Old)
	}

	var bare scoreRecord
	if err := sonic.Unmarshal(payload, &bare); err != nil {
		return ScoreChange{}, false, err
	}
	return changeFromRecords(bare, nil)
}

func changeFromRecords(current scoreRecord, previous *scoreRecord) (ScoreChange, bool, error) {
	if current.APIMatchID == 0 {
		return ScoreChange{}, false, nil
	}

	change := ScoreChange{
		APIMatchID: current.APIMatchID,
		New:        current.snapshot(),
	}
	if previous != nil {
		change.Old = previous.snapshot()
	}
	return change, true, nil
}
