package ops

import (
	"time"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/schedule"
	"github.com/hpungsan/leitner/internal/store"
)

// ScheduleInput contains parameters for the ShowSchedule operation.
type ScheduleInput struct {
	Format string    // text (default), markdown, html
	Date   time.Time // row to highlight; default: now
	Styled bool      // terminal styling for text output
}

// ScheduleOutput contains the result of the ShowSchedule operation.
type ScheduleOutput struct {
	Format    schedule.Format `json:"format"`
	StartDate time.Time       `json:"start_date"`
	Day       int             `json:"day"`
	Rendered  string          `json:"rendered"`
}

// ShowSchedule renders the full review cycle with the given date's row highlighted.
func ShowSchedule(repo *store.Repository, input ScheduleInput) (*ScheduleOutput, error) {
	format, err := schedule.ParseFormat(input.Format)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	sched := ScheduleFor(repo)
	day := sched.DayOfSchedule(resolveDate(input.Date))

	rendered, err := schedule.RenderString(sched, schedule.RenderOptions{
		Format:    format,
		Highlight: &day,
		Styled:    input.Styled,
	})
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ScheduleOutput{
		Format:    format,
		StartDate: sched.StartDate(),
		Day:       day,
		Rendered:  rendered,
	}, nil
}
