package schedule

import (
	"fmt"
	"slices"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Schedule maps calendar dates onto a fixed review cycle anchored at a start date.
// It is immutable after construction.
type Schedule struct {
	start     time.Time
	cycle     [][]int
	numLevels int
}

// New returns the canonical 64-day Leitner schedule anchored at start.
func New(start time.Time) *Schedule {
	s, err := NewWithCycle(start, leitnerCycle[:])
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithCycle returns a schedule over a custom cycle.
// The cycle must be non-empty and every level must be at least 1.
func NewWithCycle(start time.Time, cycle [][]int) (*Schedule, error) {
	if len(cycle) == 0 {
		return nil, fmt.Errorf("schedule cycle must have at least one day")
	}

	s := &Schedule{start: start, cycle: make([][]int, len(cycle))}
	for day, levels := range cycle {
		for _, level := range levels {
			if level < 1 {
				return nil, fmt.Errorf("day %d: level must be >= 1, got %d", day, level)
			}
			s.numLevels = max(s.numLevels, level)
		}
		s.cycle[day] = append([]int(nil), levels...)
	}
	return s, nil
}

// StartDate returns day 0 of the cycle.
func (s *Schedule) StartDate() time.Time {
	return s.start
}

// Len returns the number of days in the cycle.
func (s *Schedule) Len() int {
	return len(s.cycle)
}

// NumLevels returns the highest level that appears anywhere in the cycle.
func (s *Schedule) NumLevels() int {
	return s.numLevels
}

// LevelsForDay returns the levels due on the given day of the cycle, highest first.
// Any integer is accepted and wrapped into [0, Len()).
func (s *Schedule) LevelsForDay(day int) []int {
	return slices.Clone(s.cycle[Mod(day, s.Len())])
}

// DayOfSchedule returns the cycle day that at falls on.
func (s *Schedule) DayOfSchedule(at time.Time) int {
	return int(Mod64(DaysBetween(s.start, at), int64(s.Len())))
}

// LevelsForDate returns the levels due on the cycle day that at falls on.
func (s *Schedule) LevelsForDate(at time.Time) []int {
	return s.LevelsForDay(s.DayOfSchedule(at))
}

// IsDue reports whether a fact at level is due on at.
func (s *Schedule) IsDue(level int, at time.Time) bool {
	return slices.Contains(s.cycle[s.DayOfSchedule(at)], level)
}

// DaysBetween returns the number of whole 24-hour days from start to at, rounded toward negative infinity.
// A moment one second before start is day -1, not day 0.
func DaysBetween(start, at time.Time) int64 {
	secs := at.Unix() - start.Unix()
	if at.Nanosecond() < start.Nanosecond() {
		secs--
	}
	return floorDiv(secs, secondsPerDay)
}

// Mod returns the Euclidean remainder of a by n, always in [0, n).
func Mod(a, n int) int {
	return int(Mod64(int64(a), int64(n)))
}

// Mod64 returns the Euclidean remainder of a by n, always in [0, n).
func Mod64(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
