package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// Cookie names carrying the session tokens.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

var (
	// ErrInvalidToken is returned when a token has a bad signature, an unexpected
	// signing method, a missing subject, or is expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenMissing is returned when a request carries no access token.
	ErrTokenMissing = errors.New("token missing")
)

// AccessClaims are embedded into access tokens.
type AccessClaims struct {
	UserID   uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims are embedded into refresh tokens.
type RefreshClaims struct {
	UserID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies access and refresh tokens.
// The two token kinds are signed with distinct secrets.
type JWT struct {
	AccessSecret  string        // Secret key for signing access tokens
	AccessExp     time.Duration // Access token lifetime
	RefreshSecret string        // Secret key for signing refresh tokens
	RefreshExp    time.Duration // Refresh token lifetime
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithAccessSecret sets the access token secret.
func WithAccessSecret(secret string) Opt {
	return func(j *JWT) { j.AccessSecret = secret }
}

// WithAccessExpiration sets the access token lifetime.
func WithAccessExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.AccessExp = exp }
}

// WithRefreshSecret sets the refresh token secret.
func WithRefreshSecret(secret string) Opt {
	return func(j *JWT) { j.RefreshSecret = secret }
}

// WithRefreshExpiration sets the refresh token lifetime.
func WithRefreshExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.RefreshExp = exp }
}

// New creates a new JWT instance.
func New(opts ...Opt) *JWT {
	j := &JWT{
		AccessSecret:  "access_secret",
		AccessExp:     15 * time.Minute,
		RefreshSecret: "refresh_secret",
		RefreshExp:    10 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func registered(userID uuid.UUID, exp time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
	}
}

// GenerateAccessToken creates an access token for the given user.
func (j *JWT) GenerateAccessToken(ctx context.Context, user *models.User) (string, error) {
	claims := AccessClaims{
		UserID:           user.UserID,
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		RegisteredClaims: registered(user.UserID, j.AccessExp),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AccessSecret))
}

// GenerateRefreshToken creates a refresh token embedding only the user ID.
func (j *JWT) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	claims := RefreshClaims{
		UserID:           userID,
		RegisteredClaims: registered(userID, j.RefreshExp),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.RefreshSecret))
}

// ParseAccessToken verifies an access token and returns its claims.
func (j *JWT) ParseAccessToken(ctx context.Context, tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parse(tokenString, claims, j.AccessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: id not found in token", ErrInvalidToken)
	}
	return claims, nil
}

// ParseRefreshToken verifies a refresh token and returns its claims.
func (j *JWT) ParseRefreshToken(ctx context.Context, tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(tokenString, claims, j.RefreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: id not found in token", ErrInvalidToken)
	}
	return claims, nil
}

func parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// GetTokenFromRequest extracts the access token from the accessToken cookie,
// falling back to the Authorization header with the "Bearer " prefix stripped.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
