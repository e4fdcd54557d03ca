package ops

import (
	"slices"
	"time"

	"github.com/hpungsan/leitner/internal/store"
)

// StatsInput contains parameters for the Stats operation.
type StatsInput struct {
	Date time.Time // default: now
}

// LevelCount is the number of facts in one box.
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	Total       int          `json:"total"`
	StartDate   time.Time    `json:"start_date"`
	Date        time.Time    `json:"date"`
	Day         int          `json:"day"`
	DueLevels   []int        `json:"due_levels"`
	DueCount    int          `json:"due_count"`
	CycleLength int          `json:"cycle_length"`
	NumLevels   int          `json:"num_levels"`
	ByLevel     []LevelCount `json:"by_level"`
}

// Stats summarizes the repository: counts per level and what is due on the given date.
// ByLevel always lists levels 1..NumLevels, followed by any higher level that holds facts.
func Stats(repo *store.Repository, input StatsInput) (*StatsOutput, error) {
	date := resolveDate(input.Date)
	sched := ScheduleFor(repo)

	counts := make(map[int]int)
	for _, f := range repo.All() {
		counts[f.Level()]++
	}

	levels := make([]int, 0, sched.NumLevels()+len(counts))
	for level := 1; level <= sched.NumLevels(); level++ {
		levels = append(levels, level)
	}
	for level := range counts {
		if level > sched.NumLevels() {
			levels = append(levels, level)
		}
	}
	slices.Sort(levels)

	byLevel := make([]LevelCount, 0, len(levels))
	for _, level := range levels {
		byLevel = append(byLevel, LevelCount{Level: level, Count: counts[level]})
	}

	dueLevels := sched.LevelsForDate(date)
	dueCount := 0
	for _, level := range dueLevels {
		dueCount += counts[level]
	}

	return &StatsOutput{
		Total:       repo.Count(),
		StartDate:   sched.StartDate(),
		Date:        date,
		Day:         sched.DayOfSchedule(date),
		DueLevels:   dueLevels,
		DueCount:    dueCount,
		CycleLength: sched.Len(),
		NumLevels:   sched.NumLevels(),
		ByLevel:     byLevel,
	}, nil
}
