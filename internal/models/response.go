package models

// APIResponse is the envelope of every response body.
// swagger:model APIResponse
type APIResponse struct {
	// HTTP status code
	// example: 200
	StatusCode int `json:"statusCode"`

	// Payload, null on failure
	Data any `json:"data"`

	// Human readable message
	// example: User logged in successfully
	Message string `json:"message"`

	// Whether the request succeeded
	// example: true
	Success bool `json:"success"`
}
