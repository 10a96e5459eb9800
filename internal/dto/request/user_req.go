package request

// CreateUserRequest is the admin-side user creation payload.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest patches a user record. Nil fields are left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateProfileRequest is the self-service variant: no role field, so a
// user can never escalate their own permissions.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}
