package http

import (
	"net/http"

	"github.com/teamstack/ems-backend-go/internal/domain/leaderboard"
	"github.com/teamstack/ems-backend-go/internal/handler/http/response"
)

type LeaderboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	GetDepartments(w http.ResponseWriter, r *http.Request)
}

type leaderboardHandlerImpl struct {
	leaderboardService leaderboard.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) LeaderboardHandler {
	return &leaderboardHandlerImpl{
		leaderboardService: leaderboardService,
	}
}

// Get implements LeaderboardHandler.
func (h *leaderboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboardService.GetLeaderboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDepartments implements LeaderboardHandler.
func (h *leaderboardHandlerImpl) GetDepartments(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboardService.GetDepartmentLeaderboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
