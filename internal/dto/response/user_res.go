package response

import "artdb/internal/data/entity"

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: deref(user.FirstName),
		LastName:  deref(user.LastName),
		Bio:       deref(user.Bio),
		Role:      string(user.Role),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserResponse(user))
	}
	return out
}
