package ops

import (
	"time"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/fact"
	"github.com/hpungsan/leitner/internal/schedule"
	"github.com/hpungsan/leitner/internal/store"
)

// ReviewInput contains parameters for the Review operation.
type ReviewInput struct {
	ID      string    // required
	Correct *bool     // required
	At      time.Time // default: now
}

// ReviewOutput contains the result of the Review operation.
type ReviewOutput struct {
	ID            string     `json:"id"`
	Correct       bool       `json:"correct"`
	PreviousLevel int        `json:"previous_level"`
	Level         int        `json:"level"`
	NextDue       *time.Time `json:"next_due,omitempty"`
}

// Review records a review outcome. A correct answer promotes the fact one box,
// never past the highest level in the cycle. A wrong answer sends it back to level 1.
func Review(repo *store.Repository, input ReviewInput) (*ReviewOutput, error) {
	id, err := requireText("id", input.ID)
	if err != nil {
		return nil, err
	}
	if input.Correct == nil {
		return nil, errors.NewInvalidRequest("correct is required")
	}

	f, err := repo.Get(id)
	if err != nil {
		return nil, err
	}

	at := resolveDate(input.At)
	sched := ScheduleFor(repo)
	previous := f.Level()

	if *input.Correct {
		fact.PromoteCapped(&f, sched.NumLevels())
	} else {
		fact.Demote(&f)
	}
	reviewedAt := at.UTC()
	f.ReviewedAt = &reviewedAt

	if err := repo.Replace(f); err != nil {
		return nil, err
	}

	return &ReviewOutput{
		ID:            f.ID,
		Correct:       *input.Correct,
		PreviousLevel: previous,
		Level:         f.Level(),
		NextDue:       nextDue(sched, f.Level(), at),
	}, nil
}

// nextDue returns the first date after at on which level comes up, or nil if
// the level never appears in the cycle.
func nextDue(sched *schedule.Schedule, level int, at time.Time) *time.Time {
	for k := 1; k <= sched.Len(); k++ {
		d := at.Add(time.Duration(k) * 24 * time.Hour)
		if sched.IsDue(level, d) {
			d = d.UTC()
			return &d
		}
	}
	return nil
}
