package leaderboard

// ActivityCounts is the raw per-user tally the score is computed from.
// Repositories return one row per active user, ordered by user ID so the
// tie-break below stays deterministic.
type ActivityCounts struct {
	UserID          string
	FullName        string
	Department      string
	AttendanceCount int
	WorksheetCount  int
}

type Entry struct {
	Rank            int    `json:"rank"`
	UserID          string `json:"user_id"`
	FullName        string `json:"full_name"`
	Department      string `json:"department"`
	AttendanceScore int    `json:"attendance_score"`
	WorksheetScore  int    `json:"worksheet_score"`
	TotalScore      int    `json:"total_score"`
}

type DepartmentScore struct {
	Department string `json:"department"`
	TotalScore int    `json:"total_score"`
	Members    int    `json:"members"`
}

type LeaderboardResponse struct {
	WindowDays    int     `json:"window_days"`
	GeneratedAt   string  `json:"generated_at"`
	TopDepartment string  `json:"top_department"`
	Top           []Entry `json:"top"`     // first 10 of the ranking
	Entries       []Entry `json:"entries"` // full ranking
}

type DepartmentLeaderboardResponse struct {
	WindowDays  int               `json:"window_days"`
	GeneratedAt string            `json:"generated_at"`
	Top         []Entry           `json:"top"` // first 15 of the ranking
	Departments []DepartmentScore `json:"departments"`
}
