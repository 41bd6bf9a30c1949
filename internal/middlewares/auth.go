package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// Tokener extracts the access token from a request
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves an access token to the user it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, *jwt.AccessClaims, error)
}

// AuthMiddleware returns a middleware that rejects requests without a valid access token
// and attaches the caller to the request context.
func AuthMiddleware(tokener Tokener, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				responses.Error(w, apperrors.Unauthorized("Unauthorized request"))
				return
			}

			user, claims, err := authenticator.Authenticate(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				responses.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user, claims)))
		})
	}
}
