package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrUniqueViolation is returned when a write collides with a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrUserNotFound is returned when a write targets a user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrStaleRefreshToken is returned when the stored refresh token digest no longer matches.
	ErrStaleRefreshToken = errors.New("stale refresh token")
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction if one is bound to ctx, otherwise the pool.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// oneLine collapses a query to a single line for logging.
func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
