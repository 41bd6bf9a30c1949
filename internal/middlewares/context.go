package middlewares

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// contextKey is an unexported type for keys in context
type contextKey int

const (
	txKey contextKey = iota
	userKey
	claimsKey
	requestIDKey
)

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// WithUser attaches the authenticated user and its token claims to ctx.
func WithUser(ctx context.Context, user *models.User, claims *jwt.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// GetUserFromContext returns the authenticated user, or nil outside AuthMiddleware.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// GetClaimsFromContext returns the access token claims of the authenticated user.
func GetClaimsFromContext(ctx context.Context) *jwt.AccessClaims {
	claims, _ := ctx.Value(claimsKey).(*jwt.AccessClaims)
	return claims
}

// GetRequestIDFromContext returns the request ID assigned by LoggingMiddleware.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
