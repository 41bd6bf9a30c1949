package handlers

//go:generate mockgen -source=update_detail.go -destination=update_detail_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// DetailUpdater defines the interface that the profile service must implement.
type DetailUpdater interface {
	UpdateDetails(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error)
}

// NewUpdateDetailHandler returns an HTTP handler that updates the caller's full name and email.
// @Summary Update account details
// @Tags users
// @Accept json
// @Produce json
// @Param updateDetailRequest body models.UpdateDetailRequest true "New full name and email"
// @Success 200 {object} models.APIResponse{data=models.User} "Account details updated successfully"
// @Failure 400 {object} models.APIResponse "All fields are required"
// @Failure 409 {object} models.APIResponse "Email is already in use"
// @Router /users/update-detail [patch]
// @Security BearerAuth
func NewUpdateDetailHandler(svc DetailUpdater, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}

		var req models.UpdateDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.Error(w, apperrors.BadRequest("invalid request body"))
			return
		}

		updated, err := svc.UpdateDetails(r.Context(), user.UserID, req.FullName, req.Email)
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, updated, "Account details updated successfully")
	}
}
