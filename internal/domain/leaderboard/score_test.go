package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counts(userID, department string, attendance, worksheets int) ActivityCounts {
	return ActivityCounts{
		UserID:          userID,
		FullName:        "User " + userID,
		Department:      department,
		AttendanceCount: attendance,
		WorksheetCount:  worksheets,
	}
}

func TestBuildEntries_Scoring(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 4, 2),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, 40, entries[0].AttendanceScore)
	assert.Equal(t, 30, entries[0].WorksheetScore)
	assert.Equal(t, 70, entries[0].TotalScore)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestBuildEntries_ZeroScoreExcluded(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 0, 0),
		counts("u2", "Sales", 1, 0),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "u2", entries[0].UserID)
}

func TestBuildEntries_SortedDescendingWithRanks(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 1, 0), // 10
		counts("u2", "Sales", 0, 2),       // 30
		counts("u3", "Design", 2, 0),      // 20
	})

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"u2", "u3", "u1"}, []string{entries[0].UserID, entries[1].UserID, entries[2].UserID})
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

// Equal totals keep the input order, so counts sorted by user ID rank
// ties deterministically.
func TestBuildEntries_TiesPreserveInputOrder(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("a", "Engineering", 8, 0), // 80
		counts("b", "Sales", 2, 4),       // 80
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, "b", entries[1].UserID)
	assert.Equal(t, entries[0].TotalScore, entries[1].TotalScore)
}

func TestTopN(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 3, 0),
		counts("u2", "Sales", 2, 0),
		counts("u3", "Design", 1, 0),
	})

	assert.Len(t, TopN(entries, 2), 2)
	assert.Len(t, TopN(entries, 10), 3)
	assert.Empty(t, TopN(nil, 5))
}

func TestDepartmentScores_SumsAndSorts(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 1, 0), // 10
		counts("u2", "Sales", 0, 3),       // 45
		counts("u3", "Engineering", 2, 0), // 20
	})

	scores := DepartmentScores(entries)

	require.Len(t, scores, 2)
	assert.Equal(t, "Sales", scores[0].Department)
	assert.Equal(t, 45, scores[0].TotalScore)
	assert.Equal(t, 1, scores[0].Members)
	assert.Equal(t, "Engineering", scores[1].Department)
	assert.Equal(t, 30, scores[1].TotalScore)
	assert.Equal(t, 2, scores[1].Members)
}

func TestDepartmentScores_TieBrokenByName(t *testing.T) {
	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Sales", 5, 0),
		counts("u2", "Design", 5, 0),
	})

	scores := DepartmentScores(entries)

	require.Len(t, scores, 2)
	assert.Equal(t, "Design", scores[0].Department)
	assert.Equal(t, "Sales", scores[1].Department)
}

func TestTopDepartment(t *testing.T) {
	assert.Equal(t, "", TopDepartment(nil))

	entries := BuildEntries([]ActivityCounts{
		counts("u1", "Engineering", 1, 0),
		counts("u2", "Sales", 5, 0),
	})
	assert.Equal(t, "Sales", TopDepartment(entries))
}
