package dto

import "time"

// RegisterRequest payload for registration inside a tenant.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Subdomain string `json:"subdomain"`
}

// ActivateRequest payload for account activation.
type ActivateRequest struct {
	ActivationCode string `json:"activation_code"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordChangeConfirmRequest redeems a password change token.
type PasswordChangeConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UsernameChangeInitRequest starts a username change.
type UsernameChangeInitRequest struct {
	NewUsername string `json:"new_username"`
}

// UsernameChangeConfirmRequest redeems a username change token.
type UsernameChangeConfirmRequest struct {
	Token string `json:"token"`
}
