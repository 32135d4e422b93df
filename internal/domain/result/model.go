package result

import (
	"time"

	"github.com/totl-app/totl-api/internal/domain/pick"
)

// Result is the declared final outcome for one fixture, entered once the
// match is finished. It is the ground truth for scoring.
type Result struct {
	Gameweek     int
	FixtureIndex int
	Outcome      pick.Outcome
	DeclaredAt   time.Time
}
