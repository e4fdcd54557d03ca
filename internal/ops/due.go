package ops

import (
	"slices"
	"time"

	"github.com/hpungsan/leitner/internal/store"
)

// DueInput contains parameters for the Due operation.
type DueInput struct {
	Date        time.Time // default: now
	SortByLevel bool      // highest level first; ties keep insertion order
	HideAnswers bool
}

// DueOutput contains the result of the Due operation.
type DueOutput struct {
	Date   time.Time  `json:"date"`
	Day    int        `json:"day"`
	Levels []int      `json:"levels"`
	Items  []FactItem `json:"items"`
	Count  int        `json:"count"`
}

// Due returns the facts whose level is scheduled for review on the given date.
func Due(repo *store.Repository, input DueInput) (*DueOutput, error) {
	date := resolveDate(input.Date)
	sched := ScheduleFor(repo)
	levels := sched.LevelsForDate(date)

	items := make([]FactItem, 0)
	for _, f := range repo.All() {
		if !slices.Contains(levels, f.Level()) {
			continue
		}
		item := toItem(f)
		if input.HideAnswers {
			item.Answer = ""
		}
		items = append(items, item)
	}

	if input.SortByLevel {
		slices.SortStableFunc(items, func(a, b FactItem) int {
			return b.Level - a.Level
		})
	}

	return &DueOutput{
		Date:   date,
		Day:    sched.DayOfSchedule(date),
		Levels: levels,
		Items:  items,
		Count:  len(items),
	}, nil
}
