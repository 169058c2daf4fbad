package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Username
	// required: true
	// example: alice
	Username string `json:"username" validate:"required,max=255"`

	// Password
	// required: true
	// example: secret
	Password string `json:"passwd" validate:"required,maxbytes=72"`

	// Profile picture URL or path
	// example: https://example.com/alice.png
	ProfilePic *string `json:"profilePic,omitempty"`
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Invalid username or password
	Error string `json:"error"`
}
