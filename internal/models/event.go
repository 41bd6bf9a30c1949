package models

// User event types published to the event bus.
const (
	EventUserRegistered      = "user.registered"
	EventUserLoggedIn        = "user.logged_in"
	EventUserLoggedOut       = "user.logged_out"
	EventUserPasswordChanged = "user.password_changed"
	EventUserProfileUpdated  = "user.profile_updated"
)

// UserEvent represents a user lifecycle event.
type UserEvent struct {
	EventID   string `json:"event_id"`           // EventID is a unique identifier for the event.
	Type      string `json:"type"`               // Type is one of the Event* constants.
	UserID    string `json:"user_id"`            // UserID is the identifier of the affected user.
	Username  string `json:"username,omitempty"` // Username of the affected user at the time of the event.
	Timestamp int64  `json:"timestamp"`          // Timestamp is the Unix timestamp (in seconds) of the event.
}
