package auth

import (
	"github.com/0uma0tieno/BLITZ/internal/users"
)

// RegisterRequest captures a signup. Role is part of the identity, so the
// same name can exist once per role.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=12"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Role     string  `json:"role" validate:"required,oneof=store footman rider"`
}

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh token. The access token may be expired
// but must otherwise be valid, it identifies the session being rotated.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is the token pair plus the authenticated user.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user,omitempty"`
}
