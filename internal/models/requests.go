package models

// LoginRequest represents the JSON body for user login.
// Either username or email must be supplied.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: pw123
	Password string `json:"password"`
}

// RefreshTokenRequest represents the JSON body for session refresh.
// The token may be sent in the refreshToken cookie instead.
// swagger:model RefreshTokenRequest
type RefreshTokenRequest struct {
	// Refresh token
	// example: eyJhbGciOiJIUzI1NiIs...
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest represents the JSON body for a password change.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	// example: pw123
	OldPassword string `json:"oldPassword"`

	// New password
	// required: true
	// example: pw456
	NewPassword string `json:"newPassword"`
}

// UpdateDetailRequest represents the JSON body for a profile detail update.
// swagger:model UpdateDetailRequest
type UpdateDetailRequest struct {
	// Full name
	// required: true
	// example: Alice A
	FullName string `json:"fullName"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email"`
}
