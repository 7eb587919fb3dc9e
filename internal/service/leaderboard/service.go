package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/teamstack/ems-backend-go/internal/domain/leaderboard"
)

type LeaderboardServiceImpl struct {
	leaderboard.LeaderboardRepository

	now func() time.Time
}

func NewLeaderboardService(repo leaderboard.LeaderboardRepository) leaderboard.LeaderboardService {
	return &LeaderboardServiceImpl{
		LeaderboardRepository: repo,
		now:                   time.Now,
	}
}

func (s *LeaderboardServiceImpl) entries(ctx context.Context) ([]leaderboard.Entry, time.Time, error) {
	now := s.now()
	since := now.AddDate(0, 0, -leaderboard.WindowDays)

	counts, err := s.LeaderboardRepository.ActivityCounts(ctx, since)
	if err != nil {
		return nil, now, fmt.Errorf("failed to load activity counts: %w", err)
	}
	return leaderboard.BuildEntries(counts), now, nil
}

// GetLeaderboard implements leaderboard.LeaderboardService.
func (s *LeaderboardServiceImpl) GetLeaderboard(ctx context.Context) (leaderboard.LeaderboardResponse, error) {
	entries, now, err := s.entries(ctx)
	if err != nil {
		return leaderboard.LeaderboardResponse{}, err
	}

	return leaderboard.LeaderboardResponse{
		WindowDays:    leaderboard.WindowDays,
		GeneratedAt:   now.Format(time.RFC3339),
		TopDepartment: leaderboard.TopDepartment(entries),
		Top:           leaderboard.TopN(entries, 10),
		Entries:       entries,
	}, nil
}

// GetDepartmentLeaderboard implements leaderboard.LeaderboardService.
func (s *LeaderboardServiceImpl) GetDepartmentLeaderboard(ctx context.Context) (leaderboard.DepartmentLeaderboardResponse, error) {
	entries, now, err := s.entries(ctx)
	if err != nil {
		return leaderboard.DepartmentLeaderboardResponse{}, err
	}

	return leaderboard.DepartmentLeaderboardResponse{
		WindowDays:  leaderboard.WindowDays,
		GeneratedAt: now.Format(time.RFC3339),
		Top:         leaderboard.TopN(entries, 15),
		Departments: leaderboard.DepartmentScores(entries),
	}, nil
}
