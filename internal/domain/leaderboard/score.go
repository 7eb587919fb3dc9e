package leaderboard

import (
	"sort"
)

// Scoring weights and rolling window for the composite score.
const (
	WindowDays           = 30
	AttendancePointValue = 10
	WorksheetPointValue  = 15
)

// BuildEntries turns raw activity counts into a ranked leaderboard.
// Users with a zero total are dropped entirely. The sort is stable and keys
// on total score only, so equal scores keep the input order; callers supply
// counts ordered by user ID, which makes the tie-break deterministic.
func BuildEntries(counts []ActivityCounts) []Entry {
	entries := make([]Entry, 0, len(counts))
	for _, c := range counts {
		attendanceScore := c.AttendanceCount * AttendancePointValue
		worksheetScore := c.WorksheetCount * WorksheetPointValue
		total := attendanceScore + worksheetScore
		if total == 0 {
			continue
		}
		entries = append(entries, Entry{
			UserID:          c.UserID,
			FullName:        c.FullName,
			Department:      c.Department,
			AttendanceScore: attendanceScore,
			WorksheetScore:  worksheetScore,
			TotalScore:      total,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TopN returns the first n entries of an already ranked list.
func TopN(entries []Entry, n int) []Entry {
	if len(entries) < n {
		n = len(entries)
	}
	return entries[:n]
}

// DepartmentScores sums member scores per department, descending, ties
// broken by department name.
func DepartmentScores(entries []Entry) []DepartmentScore {
	totals := make(map[string]*DepartmentScore)
	order := make([]string, 0)
	for _, e := range entries {
		ds, ok := totals[e.Department]
		if !ok {
			ds = &DepartmentScore{Department: e.Department}
			totals[e.Department] = ds
			order = append(order, e.Department)
		}
		ds.TotalScore += e.TotalScore
		ds.Members++
	}

	scores := make([]DepartmentScore, 0, len(order))
	for _, name := range order {
		scores = append(scores, *totals[name])
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].Department < scores[j].Department
	})
	return scores
}

// TopDepartment returns the highest scoring department, or "" when the
// leaderboard is empty.
func TopDepartment(entries []Entry) string {
	scores := DepartmentScores(entries)
	if len(scores) == 0 {
		return ""
	}
	return scores[0].Department
}
