package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, email, password string) (*models.Session, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by username or email and sets the accessToken and refreshToken cookies
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.APIResponse{data=models.Session} "User logged in successfully"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Invalid user credentials"
// @Failure 404 {object} models.APIResponse "User does not exist"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.Error(w, apperrors.BadRequest("invalid request body"))
			return
		}

		session, err := svc.Login(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			responses.Error(w, err)
			return
		}

		cookies.setSession(w, session.AccessToken, session.RefreshToken)
		responses.JSON(w, http.StatusOK, session, "User logged in successfully")
	}
}
