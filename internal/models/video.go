package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchedVideo is one entry of a user's watch history with its owner's public fields.
// swagger:model WatchedVideo
type WatchedVideo struct {
	VideoID       uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Thumbnail     string    `json:"thumbnail" db:"thumbnail"`
	VideoFile     string    `json:"videoFile" db:"video_file"`
	Duration      float64   `json:"duration" db:"duration"`
	Views         int64     `json:"views" db:"views"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	WatchedAt     time.Time `json:"watchedAt" db:"watched_at"`
	OwnerID       uuid.UUID `json:"ownerId" db:"owner_id"`
	OwnerUsername string    `json:"ownerUsername" db:"owner_username"`
	OwnerFullName string    `json:"ownerFullName" db:"owner_full_name"`
	OwnerAvatar   string    `json:"ownerAvatar" db:"owner_avatar"`
}
