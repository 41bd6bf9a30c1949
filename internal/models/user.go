package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"id"`                   // Primary key
	Username     string    `json:"username" db:"username"`       // Unique lowercase username
	Email        string    `json:"email" db:"email"`             // Unique lowercase email
	FullName     string    `json:"full_name" db:"full_name"`     // Display name
	Avatar       string    `json:"avatar" db:"avatar"`           // Avatar URL
	CoverImage   *string   `json:"cover_image" db:"cover_image"` // Optional cover image URL
	Password     string    `json:"-" db:"password"`              // Bcrypt digest
	RefreshToken *string   `json:"-" db:"refresh_token"`         // Digest of the active refresh token
	CreatedAt    time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

// User is the sanitized view of a user record: no password, no refresh token.
// swagger:model User
type User struct {
	UserID     uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sanitize returns the public view of the record.
func (u UserDB) Sanitize() *User {
	return &User{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// NewUser holds the normalized fields of a user about to be created.
type NewUser struct {
	Username   string
	Email      string
	FullName   string
	Avatar     string
	CoverImage *string
	Password   string // Bcrypt digest
}
