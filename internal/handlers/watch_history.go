package handlers

//go:generate mockgen -source=watch_history.go -destination=watch_history_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// WatchHistoryGetter defines the interface that the profile service must implement.
type WatchHistoryGetter interface {
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchedVideo, error)
}

// NewWatchHistoryHandler returns an HTTP handler for the caller's watch history.
// @Summary Watch history
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.WatchedVideo} "Watch history fetched successfully"
// @Failure 401 {object} models.APIResponse "Unauthorized request"
// @Router /users/watch-history [get]
// @Security BearerAuth
func NewWatchHistoryHandler(svc WatchHistoryGetter, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}

		videos, err := svc.GetWatchHistory(r.Context(), user.UserID)
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, videos, "Watch history fetched successfully")
	}
}
