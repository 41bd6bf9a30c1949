package models

// TokenPair holds a freshly issued access and refresh token.
// swagger:model TokenPair
type TokenPair struct {
	// Access token
	// example: eyJhbGciOiJIUzI1NiIs...
	AccessToken string `json:"accessToken"`

	// Refresh token
	// example: eyJhbGciOiJIUzI1NiIs...
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful login.
// swagger:model Session
type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
