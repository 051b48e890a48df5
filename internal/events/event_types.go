package events

import "github.com/google/uuid"

// Name discriminates domain event kinds.
type Name string

const (
	NameUserRegistered              Name = "UserRegistered"
	NameUserActivated               Name = "UserActivated"
	NameUserInvited                 Name = "UserInvited"
	NameUserPasswordChangeInitiated Name = "UserPasswordChangeInitiated"
	NameUserPasswordChanged         Name = "UserPasswordChanged"
	NameUsernameChangeInitiated     Name = "UsernameChangeInitiated"
	NameUsernameChanged             Name = "UsernameChanged"
)

// DomainEvent is an immutable fact describing a completed state transition.
// Implementations are value records carrying only what a notification handler
// needs.
type DomainEvent interface {
	EventName() Name
	EventReference() string
}

// UserRegistered is produced when credentials are attached to a profile.
type UserRegistered struct {
	Reference      string `json:"reference"`
	Username       string `json:"username"`
	ActivationCode string `json:"activation_code"`
}

// UserActivated is produced when an inactive user becomes active.
type UserActivated struct {
	Reference string `json:"reference"`
	Username  string `json:"username"`
}

// UserInvited is produced when an admin invites an email address to register.
type UserInvited struct {
	Reference           string `json:"reference"`
	InvitedEmailAddress string `json:"invited_email_address"`
	AdminUsername       string `json:"admin_username"`
	AdminFirstName      string `json:"admin_first_name"`
	AdminLastName       string `json:"admin_last_name"`
	AdminCompany        string `json:"admin_company"`
}

// UserPasswordChangeInitiated carries the short-lived change token.
type UserPasswordChangeInitiated struct {
	Reference           string `json:"reference"`
	Username            string `json:"username"`
	PasswordChangeToken string `json:"password_change_token"`
}

// UserPasswordChanged is produced after the password hash was replaced.
type UserPasswordChanged struct {
	Reference string `json:"reference"`
	Username  string `json:"username"`
}

// UsernameChangeInitiated carries the token binding old and new username.
type UsernameChangeInitiated struct {
	Reference           string `json:"reference"`
	Username            string `json:"username"`
	NewUsername         string `json:"new_username"`
	UsernameChangeToken string `json:"username_change_token"`
}

// UsernameChanged is produced after the username was reassigned.
type UsernameChanged struct {
	Reference   string `json:"reference"`
	NewUsername string `json:"new_username"`
}

func (e UserRegistered) EventName() Name              { return NameUserRegistered }
func (e UserActivated) EventName() Name               { return NameUserActivated }
func (e UserInvited) EventName() Name                 { return NameUserInvited }
func (e UserPasswordChangeInitiated) EventName() Name { return NameUserPasswordChangeInitiated }
func (e UserPasswordChanged) EventName() Name         { return NameUserPasswordChanged }
func (e UsernameChangeInitiated) EventName() Name     { return NameUsernameChangeInitiated }
func (e UsernameChanged) EventName() Name             { return NameUsernameChanged }

func (e UserRegistered) EventReference() string              { return e.Reference }
func (e UserActivated) EventReference() string               { return e.Reference }
func (e UserInvited) EventReference() string                 { return e.Reference }
func (e UserPasswordChangeInitiated) EventReference() string { return e.Reference }
func (e UserPasswordChanged) EventReference() string         { return e.Reference }
func (e UsernameChangeInitiated) EventReference() string     { return e.Reference }
func (e UsernameChanged) EventReference() string             { return e.Reference }

// NewReference mints a random event identity.
func NewReference() string {
	return uuid.NewString()
}
