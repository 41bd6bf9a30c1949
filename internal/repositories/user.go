package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

const userColumns = `id, username, email, full_name, avatar, cover_image, password, refresh_token, created_at, updated_at`

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByUsernameOrEmail returns the user matching the username OR the email.
// Nil arguments are ignored. Returns (nil, nil) when no user matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = lower($1))
		   OR ($2::VARCHAR IS NOT NULL AND email = lower($2))
		LIMIT 1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", []any{username, email},
		"result", user.UserID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or (nil, nil) if absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, userID)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", []any{userID},
		"result", user.UserID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetChannelProfile aggregates the public profile of the channel owned by username.
// viewerID may be uuid.Nil for an anonymous viewer. Returns (nil, nil) if no such user.
func (r *UserReadRepository) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	const query = `
		SELECT u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image, u.created_at,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS following_count,
		       EXISTS (
		           SELECT 1 FROM subscriptions s
		           WHERE s.channel_id = u.id AND s.subscriber_id = $2::UUID
		       ) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`
	viewer := uuid.NullUUID{UUID: viewerID, Valid: viewerID != uuid.Nil}

	var profile models.ChannelProfile
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &profile, query, username, viewer)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", []any{username, viewerID},
		"result", profile,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetWatchHistory returns the videos watched by userID in watch order.
func (r *UserReadRepository) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchedVideo, error) {
	const query = `
		SELECT v.id, v.title, v.description, v.thumbnail, v.video_file, v.duration, v.views, v.created_at,
		       h.watched_at,
		       o.id AS owner_id, o.username AS owner_username, o.full_name AS owner_full_name, o.avatar AS owner_avatar
		FROM user_watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.position
	`

	videos := []models.WatchedVideo{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &videos, query, userID)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", []any{userID},
		"result", len(videos),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return videos, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a new user. A duplicate username or email yields ErrUniqueViolation.
func (r *UserWriteRepository) Create(ctx context.Context, user models.NewUser) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, full_name, avatar, cover_image, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	var created models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &created, query,
		user.Username, user.Email, user.FullName, user.Avatar, user.CoverImage, user.Password)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", []any{user.Username, user.Email, user.FullName, user.Avatar, user.CoverImage},
		"result", created.UserID,
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrUniqueViolation
	}
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// SetRefreshToken overwrites the stored refresh token digest; nil clears it.
func (r *UserWriteRepository) SetRefreshToken(ctx context.Context, userID uuid.UUID, digest *string) error {
	const query = `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`
	return r.execSingle(ctx, query, []any{userID, digest}, []any{userID, digest != nil})
}

// RotateRefreshToken replaces the refresh token digest only if the stored one is still currentDigest.
// A concurrent rotation, a logout or a missing user yields ErrStaleRefreshToken.
func (r *UserWriteRepository) RotateRefreshToken(ctx context.Context, userID uuid.UUID, currentDigest, nextDigest string) error {
	const query = `
		UPDATE users SET refresh_token = $3, updated_at = NOW()
		WHERE id = $1 AND refresh_token = $2
	`
	err := r.execSingle(ctx, query, []any{userID, currentDigest, nextDigest}, []any{userID})
	if errors.Is(err, ErrUserNotFound) {
		return ErrStaleRefreshToken
	}
	return err
}

// UpdatePassword stores a new password digest.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, digest string) error {
	const query = `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`
	return r.execSingle(ctx, query, []any{userID, digest}, []any{userID})
}

// UpdateDetails sets full name and email. A duplicate email yields ErrUniqueViolation.
func (r *UserWriteRepository) UpdateDetails(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET full_name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.updateReturning(ctx, query, userID, fullName, email)
}

// UpdateAvatar replaces the avatar URL.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET avatar = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.updateReturning(ctx, query, userID, avatarURL)
}

// UpdateCoverImage replaces the cover image URL.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET cover_image = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.updateReturning(ctx, query, userID, coverImageURL)
}

// execSingle runs an update expected to touch exactly one user row.
// logArgs is what gets logged; secrets stay out of it.
func (r *UserWriteRepository) execSingle(ctx context.Context, query string, args, logArgs []any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", logArgs,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// updateReturning runs an UPDATE ... RETURNING on one user row.
func (r *UserWriteRepository) updateReturning(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logger.Log.Infow("postgres",
		"query", oneLine(query),
		"args", args,
		"result", user.UserID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrUniqueViolation
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
