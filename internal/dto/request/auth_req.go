package request

// SignupRequest registers a new account or re-requests a confirmation code
// for an existing username/email pair.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// TokenRequest exchanges a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}
