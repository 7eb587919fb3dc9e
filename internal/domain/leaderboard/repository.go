package leaderboard

import (
	"context"
	"time"
)

// LeaderboardRepository aggregates activity counts for scoring.
type LeaderboardRepository interface {
	// ActivityCounts returns one row per active user with attendance and
	// worksheet counts since the given instant, ordered by user ID.
	ActivityCounts(ctx context.Context, since time.Time) ([]ActivityCounts, error)
}
