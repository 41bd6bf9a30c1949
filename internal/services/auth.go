package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/password"
	"github.com/sbilibin2017/gw-user-service/internal/repositories"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user models.NewUser) (*models.UserDB, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, digest *string) error
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, currentDigest, nextDigest string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, digest string) error
}

// TokenIssuer issues and verifies access and refresh tokens.
type TokenIssuer interface {
	GenerateAccessToken(ctx context.Context, user *models.User) (string, error)
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	ParseAccessToken(ctx context.Context, tokenString string) (*jwt.AccessClaims, error)
	ParseRefreshToken(ctx context.Context, tokenString string) (*jwt.RefreshClaims, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) bool
}

// TokenDenylist stores access tokens revoked before their expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MediaUploader moves a local file to media storage and returns its URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// RegisterInput holds the raw registration form.
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string // Local path of the uploaded avatar, required
	CoverImagePath string // Local path of the uploaded cover image, optional
}

// AuthService handles registration, login and the session lifecycle.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	tokens    TokenIssuer
	hasher    PasswordHasher
	denylist  TokenDenylist
	uploader  MediaUploader
	publisher eventPublisher
}

// NewAuthService creates a new AuthService instance.
// kafkaWriter may be nil, in which case no events are published.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens TokenIssuer,
	hasher PasswordHasher,
	denylist TokenDenylist,
	uploader MediaUploader,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		tokens:    tokens,
		hasher:    hasher,
		denylist:  denylist,
		uploader:  uploader,
		publisher: eventPublisher{writer: kafkaWriter},
	}
}

// PreparePassword returns the digest to persist.
// A nil plaintext means the password was not changed and currentDigest is kept as is.
// A non-nil plaintext is always hashed.
func PreparePassword(ctx context.Context, hasher PasswordHasher, currentDigest string, plaintext *string) (string, error) {
	if plaintext == nil {
		return currentDigest, nil
	}
	return hasher.Hash(ctx, *plaintext)
}

func hashError(msg string, err error) *apperrors.Error {
	if errors.Is(err, password.ErrTooLong) {
		return apperrors.BadRequest("Password is too long")
	}
	return apperrors.Internal(msg, err)
}

// refreshDigest is the form in which a refresh token is stored.
func refreshDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates a new user with an uploaded avatar and optional cover image.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalize(in.Email)
	username := normalize(in.Username)
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.BadRequest("All fields are required")
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, apperrors.Internal("failed to check user exists", err)
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, apperrors.Conflict("User with email or username already exists")
	}

	if in.AvatarPath == "" {
		return nil, apperrors.BadRequest("Avatar file is required")
	}

	avatarURL, err := svc.uploader.Upload(ctx, in.AvatarPath)
	if err != nil {
		logger.Log.Errorw("failed to upload avatar", "username", username, "err", err)
		return nil, apperrors.Upload("Error while uploading avatar", err)
	}

	var coverImage *string
	if in.CoverImagePath != "" {
		coverURL, err := svc.uploader.Upload(ctx, in.CoverImagePath)
		if err != nil {
			logger.Log.Warnw("failed to upload cover image, continuing without it", "username", username, "err", err)
		} else {
			coverImage = &coverURL
		}
	}

	digest, err := PreparePassword(ctx, svc.hasher, "", &in.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, hashError("failed to hash password", err)
	}

	user, err := svc.writer.Create(ctx, models.NewUser{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatarURL,
		CoverImage: coverImage,
		Password:   digest,
	})
	if errors.Is(err, repositories.ErrUniqueViolation) {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, apperrors.Conflict("User with email or username already exists")
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, apperrors.Internal("Something went wrong while registering the user", err)
	}

	svc.publisher.publish(ctx, models.EventUserRegistered, user.UserID, user.Username)
	return user.Sanitize(), nil
}

// Login authenticates a user by username or email and opens a new session.
func (svc *AuthService) Login(ctx context.Context, username, email, plaintext string) (*models.Session, error) {
	username = normalize(username)
	email = normalize(email)
	if username == "" && email == "" {
		return nil, apperrors.BadRequest("username or email is required")
	}

	var usernameArg, emailArg *string
	if username != "" {
		usernameArg = &username
	}
	if email != "" {
		emailArg = &email
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, usernameArg, emailArg)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username, "email", email)
		return nil, apperrors.NotFound("User does not exist")
	}

	if !svc.hasher.Verify(ctx, plaintext, user.Password) {
		logger.Log.Errorw("invalid credentials", "username", user.Username)
		return nil, apperrors.Unauthorized("Invalid user credentials")
	}

	pair, err := svc.issueTokens(ctx, user, nil)
	if err != nil {
		return nil, err
	}

	svc.publisher.publish(ctx, models.EventUserLoggedIn, user.UserID, user.Username)
	return &models.Session{
		User:         user.Sanitize(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout clears the stored refresh token and revokes the access token
// identified by tokenID until it would have expired anyway.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID, tokenID string, expiresAt time.Time) error {
	err := svc.writer.SetRefreshToken(ctx, userID, nil)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.NotFound("User does not exist")
	}
	if err != nil {
		logger.Log.Errorw("failed to clear refresh token", "userID", userID, "err", err)
		return apperrors.Internal("failed to clear refresh token", err)
	}

	if tokenID != "" {
		if err := svc.denylist.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
			logger.Log.Warnw("failed to revoke access token", "userID", userID, "err", err)
		}
	}

	svc.publisher.publish(ctx, models.EventUserLoggedOut, userID, "")
	return nil
}

// RefreshSession exchanges the active refresh token for a new token pair.
// The presented token stops working once a new pair is issued.
func (svc *AuthService) RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("Unauthorized request")
	}

	claims, err := svc.tokens.ParseRefreshToken(ctx, refreshToken)
	if err != nil {
		logger.Log.Errorw("invalid refresh token", "err", err)
		return nil, apperrors.Unauthorized("Invalid refresh token")
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", claims.UserID, "err", err)
		return nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User does not exist")
	}

	presented := refreshDigest(refreshToken)
	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(presented), []byte(*user.RefreshToken)) != 1 {
		logger.Log.Errorw("refresh token mismatch", "userID", user.UserID)
		return nil, apperrors.Unauthorized("Refresh token is expired or used")
	}

	return svc.issueTokens(ctx, user, &presented)
}

// ChangePassword replaces the password after verifying the old one.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.BadRequest("New password is required")
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return apperrors.NotFound("User does not exist")
	}

	if !svc.hasher.Verify(ctx, oldPassword, user.Password) {
		logger.Log.Errorw("invalid old password", "userID", userID)
		return apperrors.BadRequest("Invalid old password")
	}

	digest, err := PreparePassword(ctx, svc.hasher, user.Password, &newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return hashError("failed to hash password", err)
	}

	err = svc.writer.UpdatePassword(ctx, userID, digest)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.NotFound("User does not exist")
	}
	if err != nil {
		logger.Log.Errorw("failed to update password", "userID", userID, "err", err)
		return apperrors.Internal("failed to update password", err)
	}

	svc.publisher.publish(ctx, models.EventUserPasswordChanged, userID, user.Username)
	return nil
}

// Authenticate resolves an access token to the sanitized user it was issued for.
func (svc *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, *jwt.AccessClaims, error) {
	if accessToken == "" {
		return nil, nil, apperrors.Unauthorized("Unauthorized request")
	}

	claims, err := svc.tokens.ParseAccessToken(ctx, accessToken)
	if err != nil {
		logger.Log.Errorw("invalid access token", "err", err)
		return nil, nil, apperrors.Unauthorized("Invalid access token")
	}

	revoked, err := svc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Log.Errorw("failed to check token revocation", "err", err)
		return nil, nil, apperrors.Internal("failed to check token revocation", err)
	}
	if revoked {
		logger.Log.Errorw("revoked access token", "userID", claims.UserID)
		return nil, nil, apperrors.Unauthorized("Invalid access token")
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", claims.UserID, "err", err)
		return nil, nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, nil, apperrors.Unauthorized("Invalid access token")
	}

	return user.Sanitize(), claims, nil
}

// issueTokens generates a new pair and stores the digest of its refresh token.
// With a non-nil currentDigest the store is only updated if it still holds that digest,
// so a refresh token can be exchanged at most once.
func (svc *AuthService) issueTokens(ctx context.Context, user *models.UserDB, currentDigest *string) (*models.TokenPair, error) {
	const msg = "Something went wrong while generating refresh and access token"

	accessToken, err := svc.tokens.GenerateAccessToken(ctx, user.Sanitize())
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return nil, apperrors.Internal(msg, err)
	}

	refreshToken, err := svc.tokens.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return nil, apperrors.Internal(msg, err)
	}

	digest := refreshDigest(refreshToken)
	if currentDigest != nil {
		err = svc.writer.RotateRefreshToken(ctx, user.UserID, *currentDigest, digest)
	} else {
		err = svc.writer.SetRefreshToken(ctx, user.UserID, &digest)
	}
	if errors.Is(err, repositories.ErrStaleRefreshToken) {
		logger.Log.Errorw("refresh token already rotated", "userID", user.UserID)
		return nil, apperrors.Unauthorized("Refresh token is expired or used")
	}
	if err != nil {
		logger.Log.Errorw("failed to store refresh token", "userID", user.UserID, "err", err)
		return nil, apperrors.Internal(msg, err)
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
