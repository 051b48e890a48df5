package domain

import "errors"

// Sentinel errors raised by entities and repositories. Application services
// branch on these with errors.Is; the HTTP boundary maps them to status codes.
var (
	ErrEnterprizeExists   = errors.New("enterprize subdomain already registered")
	ErrEnterprizeNotFound = errors.New("enterprize does not exist")

	// ErrUserAlreadyExists means the profile already carries a user sub-entity.
	ErrUserAlreadyExists = errors.New("profile already has a registered user")
	// ErrUserNotFound means no profile matches the given reference.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrUsernameNotFound means no user matches the given username.
	ErrUsernameNotFound  = errors.New("username does not exist")
	ErrUsernameExists    = errors.New("username already exists")
	ErrUserNotAdmin      = errors.New("user is not an admin")
	ErrUserInactive      = errors.New("user is registered but not active")
	ErrUserAlreadyActive = errors.New("user is already active")

	// ErrInvalidPasswordHash signals a malformed stored hash. The
	// authentication flow maps it to invalid-credentials before it can leak.
	ErrInvalidPasswordHash = errors.New("stored password hash is invalid")

	// ErrInvalidCredentials deliberately conflates unknown usernames with
	// wrong passwords so probes cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidActivationCode covers activation tokens that fail signature,
	// expiry or purpose checks.
	ErrInvalidActivationCode = errors.New("invalid activation code")
	// ErrInvalidToken covers signature failures, malformed tokens, expiry and
	// purpose mismatches alike.
	ErrInvalidToken = errors.New("invalid token")

	ErrPostNotFound  = errors.New("post does not exist")
	ErrEventNotFound = errors.New("event does not exist")
)
