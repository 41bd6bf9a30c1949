package handlers

//go:generate mockgen -source=refresh_token.go -destination=refresh_token_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// Refresher defines the interface that the session refresh service must implement.
type Refresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// NewRefreshTokenHandler returns an HTTP handler that rotates the session tokens.
// @Summary Refresh access token
// @Description Exchanges the refresh token (cookie or body) for a new token pair. The presented token stops working.
// @Tags users
// @Accept json
// @Produce json
// @Param refreshTokenRequest body models.RefreshTokenRequest false "Refresh token, when not sent as a cookie"
// @Success 200 {object} models.APIResponse{data=models.TokenPair} "Access token refreshed"
// @Failure 401 {object} models.APIResponse "Invalid refresh token"
// @Router /users/refresh-token [post]
func NewRefreshTokenHandler(svc Refresher, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(jwt.RefreshTokenCookie); err == nil {
			token = cookie.Value
		}

		if token == "" {
			var req models.RefreshTokenRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				responses.Error(w, apperrors.BadRequest("invalid request body"))
				return
			}
			token = req.RefreshToken
		}

		pair, err := svc.RefreshSession(r.Context(), token)
		if err != nil {
			responses.Error(w, err)
			return
		}

		cookies.setSession(w, pair.AccessToken, pair.RefreshToken)
		responses.JSON(w, http.StatusOK, pair, "Access token refreshed")
	}
}
