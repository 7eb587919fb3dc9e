package leaderboard

import "context"

// LeaderboardService ranks active users over the rolling window.
type LeaderboardService interface {
	// GetLeaderboard returns the full ranking plus the monthly top 10
	GetLeaderboard(ctx context.Context) (LeaderboardResponse, error)

	// GetDepartmentLeaderboard returns per-department totals and the top 15
	GetDepartmentLeaderboard(ctx context.Context) (DepartmentLeaderboardResponse, error)
}
