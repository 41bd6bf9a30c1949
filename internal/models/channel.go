package models

import (
	"time"

	"github.com/google/uuid"
)

// ChannelProfile is the public aggregate view of a user seen as a channel.
// swagger:model ChannelProfile
type ChannelProfile struct {
	UserID           uuid.UUID `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	FullName         string    `json:"fullName" db:"full_name"`
	Email            string    `json:"email" db:"email"`
	Avatar           string    `json:"avatar" db:"avatar"`
	CoverImage       *string   `json:"coverImage" db:"cover_image"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	SubscribersCount int64     `json:"subscribersCount" db:"subscribers_count"` // Users subscribed to this channel
	FollowingCount   int64     `json:"followingCount" db:"following_count"`     // Channels this user is subscribed to
	IsSubscribed     bool      `json:"isSubscribed" db:"is_subscribed"`         // Whether the viewer subscribes to this channel
}

// Subscription relates a subscriber to a channel. Both are users.
type Subscription struct {
	SubscriberID uuid.UUID `json:"subscriberId" db:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channelId" db:"channel_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
