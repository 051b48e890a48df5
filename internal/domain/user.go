package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the login-credential sub-record embedded one-to-one in a Profile.
// A user without a password hash is preregistered: the username is reserved
// but registration has not been completed.
type User struct {
	Reference    string
	Created      time.Time
	Username     string
	PasswordHash *string
	IsActive     bool
	Activated    *time.Time
	Invited      *time.Time
	Role         Role
}

// NewUser creates a user sub-entity. Usernames are matched case-insensitively
// system-wide, so the stored form is always lowercase. The hash must come from
// the password hashing service; plaintext never reaches this type.
func NewUser(username string, passwordHash *string, role Role) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		Reference:    uuid.NewString(),
		Created:      time.Now().UTC(),
		Username:     strings.ToLower(username),
		PasswordHash: passwordHash,
		Role:         role,
	}
}

// SetPasswordHash replaces the stored hash. Write-only: there is no getter
// for anything but the opaque hash.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = &hash
}

// SetUsername reassigns the username, keeping the lowercase invariant.
func (u *User) SetUsername(username string) {
	u.Username = strings.ToLower(username)
}

// Invite stamps the invitation time.
func (u *User) Invite() {
	now := time.Now().UTC()
	u.Invited = &now
}

// Activate unconditionally marks the user active. Idempotency is enforced at
// the service layer, which must reject already-active users first.
func (u *User) Activate() {
	now := time.Now().UTC()
	u.IsActive = true
	u.Activated = &now
}

// IsAdmin reports whether the user holds the admin or super-admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin reports whether the user holds the super-admin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
