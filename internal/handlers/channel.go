package handlers

//go:generate mockgen -source=channel.go -destination=channel_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// ChannelProfiler defines the interface that the profile service must implement.
type ChannelProfiler interface {
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error)
}

// NewChannelProfileHandler returns an HTTP handler for the public profile of a channel.
// @Summary Channel profile
// @Description Returns the channel with its subscriber and following counts and whether the caller is subscribed
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} models.APIResponse{data=models.ChannelProfile} "User channel fetched successfully"
// @Failure 400 {object} models.APIResponse "username is missing"
// @Failure 404 {object} models.APIResponse "Channel does not exist"
// @Router /users/channel/{username} [get]
// @Security BearerAuth
func NewChannelProfileHandler(svc ChannelProfiler, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}

		profile, err := svc.GetChannelProfile(r.Context(), chi.URLParam(r, "username"), viewer.UserID)
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, profile, "User channel fetched successfully")
	}
}
