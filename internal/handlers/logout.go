package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID, tokenID string, expiresAt time.Time) error
}

// NewLogoutHandler returns an HTTP handler that ends the caller's session.
// @Summary User logout
// @Description Invalidates the refresh token and the current access token and clears both cookies
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse "User logged out"
// @Failure 401 {object} models.APIResponse "Unauthorized request"
// @Router /users/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, claimsGetter ClaimsGetter, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsGetter(r.Context())
		if claims == nil {
			responses.Error(w, apperrors.Unauthorized("Unauthorized request"))
			return
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		if err := svc.Logout(r.Context(), claims.UserID, claims.ID, expiresAt); err != nil {
			responses.Error(w, err)
			return
		}

		cookies.clearSession(w)
		responses.JSON(w, http.StatusOK, struct{}{}, "User logged out")
	}
}
