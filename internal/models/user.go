package models

import (
	"fmt"
	"net/mail"
	"time"
)

// Role represents an account role.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleCustomer:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("role must be one of: ADMIN, CUSTOMER")
	}
}

// User represents an account. PasswordHash never serializes.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
	Role     string  `json:"role,omitempty"`
}

// Validate checks the register request and normalizes the role, defaulting
// to CUSTOMER when absent.
func (req *RegisterRequest) Validate() (Role, error) {
	if req.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return "", fmt.Errorf("name must not exceed 100 characters")
	}
	if req.Email == "" {
		return "", fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", fmt.Errorf("email is not a valid address")
	}
	if len(req.Password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	if req.Role == "" {
		return RoleCustomer, nil
	}
	return ParseRole(req.Role)
}

// LoginRequest is the payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login request.
func (req *LoginRequest) Validate() error {
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// TokenPair carries both session tokens issued on register/login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
