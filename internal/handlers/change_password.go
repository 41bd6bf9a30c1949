package handlers

//go:generate mockgen -source=change_password.go -destination=change_password_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// PasswordChanger defines the interface that the password service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// NewChangePasswordHandler returns an HTTP handler that changes the caller's password.
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param changePasswordRequest body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.APIResponse "Password changed successfully"
// @Failure 400 {object} models.APIResponse "Invalid old password"
// @Failure 401 {object} models.APIResponse "Unauthorized request"
// @Router /users/change-password [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}

		var req models.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.Error(w, apperrors.BadRequest("invalid request body"))
			return
		}

		if err := svc.ChangePassword(r.Context(), user.UserID, req.OldPassword, req.NewPassword); err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
	}
}
