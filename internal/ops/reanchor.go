package ops

import (
	"time"

	"github.com/hpungsan/leitner/internal/store"
)

// ReanchorInput contains parameters for the Reanchor operation.
type ReanchorInput struct {
	Date time.Time // new start date; default: now
}

// ReanchorOutput contains the result of the Reanchor operation.
type ReanchorOutput struct {
	PreviousStartDate time.Time `json:"previous_start_date"`
	StartDate         time.Time `json:"start_date"`
}

// Reanchor moves the schedule start date. Fact levels are untouched, so the
// given date becomes day 0 of the cycle.
func Reanchor(repo *store.Repository, input ReanchorInput) (*ReanchorOutput, error) {
	previous := repo.CreatedAt()
	repo.Reanchor(resolveDate(input.Date))
	return &ReanchorOutput{
		PreviousStartDate: previous,
		StartDate:         repo.CreatedAt(),
	}, nil
}
