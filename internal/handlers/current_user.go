package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// NewCurrentUserHandler returns an HTTP handler that echoes the authenticated caller.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.User} "User fetched successfully"
// @Failure 401 {object} models.APIResponse "Unauthorized request"
// @Router /users/current-user [post]
// @Security BearerAuth
func NewCurrentUserHandler(userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}
		responses.JSON(w, http.StatusOK, user, "User fetched successfully")
	}
}
