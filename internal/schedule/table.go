package schedule

// CycleLength is the number of days in the canonical Leitner cycle.
const CycleLength = 64

// leitnerCycle lists, for each day of the cycle, the levels due that day from highest to lowest.
// Level 1 is due every day, level 2 every other day, and so on up to level 7 once per cycle on day 55.
var leitnerCycle = [CycleLength][]int{
	{2, 1},
	{3, 1},
	{2, 1},
	{4, 1},
	{2, 1},
	{3, 1},
	{2, 1},
	{1},
	{2, 1},
	{3, 1},
	{2, 1},
	{5, 1},
	{4, 2, 1},
	{3, 1},
	{2, 1},
	{1},
	{2, 1},
	{3, 1},
	{2, 1},
	{4, 1},
	{2, 1},
	{3, 1},
	{2, 1},
	{6, 1},
	{2, 1},
	{3, 1},
	{2, 1},
	{5, 1},
	{4, 2, 1},
	{3, 1},
	{2, 1},
	{1},
	{2, 1},
	{3, 1},
	{2, 1},
	{4, 1},
	{2, 1},
	{3, 1},
	{2, 1},
	{1},
	{2, 1},
	{3, 1},
	{2, 1},
	{5, 1},
	{4, 2, 1},
	{3, 1},
	{2, 1},
	{1},
	{2, 1},
	{3, 1},
	{2, 1},
	{4, 1},
	{2, 1},
	{3, 1},
	{2, 1},
	{7, 1},
	{2, 1},
	{3, 1},
	{6, 2, 1},
	{5, 1},
	{4, 2, 1},
	{3, 1},
	{2, 1},
	{1},
}

// LeitnerCycle returns a copy of the canonical 64-day cycle.
func LeitnerCycle() [][]int {
	cycle := make([][]int, len(leitnerCycle))
	for i, levels := range leitnerCycle {
		cycle[i] = append([]int(nil), levels...)
	}
	return cycle
}
