package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/teamstack/ems-backend-go/internal/domain/leaderboard"
	"github.com/teamstack/ems-backend-go/internal/pkg/database"
)

type leaderboardRepository struct {
	db *database.DB
}

func NewLeaderboardRepository(db *database.DB) leaderboard.LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// ActivityCounts implements leaderboard.LeaderboardRepository.
// Only records with an actual clock-in stamp count toward attendance; the
// ORDER BY u.id keeps tie-breaking deterministic downstream.
func (r *leaderboardRepository) ActivityCounts(ctx context.Context, since time.Time) ([]leaderboard.ActivityCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			u.id,
			u.full_name,
			u.department,
			COUNT(DISTINCT a.id) FILTER (WHERE a.clock_in IS NOT NULL AND a.created_at >= $1) AS attendance_count,
			COUNT(DISTINCT w.id) FILTER (WHERE w.created_at >= $1) AS worksheet_count
		FROM users u
		LEFT JOIN attendance_records a ON a.employee_id = u.id
		LEFT JOIN worksheets w ON w.employee_id = u.id
		WHERE u.is_active
		GROUP BY u.id, u.full_name, u.department
		ORDER BY u.id
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity counts: %w", err)
	}
	defer rows.Close()

	var counts []leaderboard.ActivityCounts
	for rows.Next() {
		var c leaderboard.ActivityCounts
		if err := rows.Scan(&c.UserID, &c.FullName, &c.Department, &c.AttendanceCount, &c.WorksheetCount); err != nil {
			return nil, fmt.Errorf("failed to scan activity counts: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
