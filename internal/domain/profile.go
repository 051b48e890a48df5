package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/enterprize-service/internal/events"
)

// Profile is the HR/person record within a tenant. It may or may not carry
// login credentials (User). The enterprize is fixed at construction and never
// changes; cross-tenant references are never created.
//
// Lifecycle methods return the domain event they produce. The orchestration
// layer persists and dispatches them.
type Profile struct {
	Reference  string
	Created    time.Time
	Deleted    *time.Time
	Enterprize *Enterprize
	User       *User

	FullName      *FullName
	Birthdate     *time.Time
	Gender        *Gender
	Contact       Contact
	CompanyStatus CompanyStatus
	PhotoURL      *string
	Skills        []string
	Descriptions  []string
	Motivation    []Motivation
	Availability  *Availability

	// Notes holds HR-only fields visible to admins.
	Notes EnterprizeNotes
}

// NewProfile constructs a profile bound permanently to the enterprize.
func NewProfile(enterprize *Enterprize, fullName *FullName) *Profile {
	return &Profile{
		Reference:  uuid.NewString(),
		Created:    time.Now().UTC(),
		Enterprize: enterprize,
		FullName:   fullName,
	}
}

// Username returns the attached user's username, or "" without a user.
func (p *Profile) Username() string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}

// PreregisterUsername reserves a username (an email address) without a
// password, the state an admin invitation creates.
func (p *Profile) PreregisterUsername(emailAddress string) error {
	if p.User != nil {
		return ErrUserAlreadyExists
	}
	p.User = NewUser(emailAddress, nil, RoleUser)
	return nil
}

// RegisterUser attaches a fully credentialed user. Completing a
// preregistration goes through User.SetPasswordHash instead.
func (p *Profile) RegisterUser(username string, passwordHash string) error {
	if p.User != nil {
		return ErrUserAlreadyExists
	}
	p.User = NewUser(username, &passwordHash, RoleUser)
	return nil
}

// Registered produces the registration event carrying the activation token.
func (p *Profile) Registered(activationToken string) events.UserRegistered {
	return events.UserRegistered{
		Reference:      events.NewReference(),
		Username:       p.User.Username,
		ActivationCode: activationToken,
	}
}

// Activate transitions the user to active. The call is unconditional; the
// service layer rejects already-active users beforehand.
func (p *Profile) Activate() events.UserActivated {
	p.User.Activate()
	return events.UserActivated{
		Reference: events.NewReference(),
		Username:  p.User.Username,
	}
}

// InviteToRegister stamps the invitation and produces the event naming the
// inviting admin. The creator must have been resolved to an admin profile
// with a valid user by the caller.
func (p *Profile) InviteToRegister(creator *Profile) events.UserInvited {
	p.User.Invite()

	var first, last string
	if creator.FullName != nil {
		first = creator.FullName.FirstName
		last = creator.FullName.LastName
	}
	return events.UserInvited{
		Reference:           events.NewReference(),
		InvitedEmailAddress: p.User.Username,
		AdminUsername:       creator.User.Username,
		AdminFirstName:      first,
		AdminLastName:       last,
		AdminCompany:        creator.Enterprize.Name,
	}
}

// Apply merges the patch into the public profile fields. Nil entries keep the
// current value.
func (p *Profile) Apply(patch ProfilePatch) {
	if patch.FirstName != nil || patch.LastName != nil {
		name := FullName{}
		if p.FullName != nil {
			name = *p.FullName
		}
		if patch.FirstName != nil {
			name.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			name.LastName = *patch.LastName
		}
		p.FullName = &name
	}
	if patch.Birthdate != nil {
		p.Birthdate = patch.Birthdate
	}
	if patch.Gender != nil {
		p.Gender = patch.Gender
	}
	if patch.Street != nil {
		p.Contact.Address.Street = patch.Street
	}
	if patch.ZipCode != nil {
		p.Contact.Address.ZipCode = patch.ZipCode
	}
	if patch.Town != nil {
		p.Contact.Address.Town = patch.Town
	}
	if patch.Country != nil {
		p.Contact.Address.Country = patch.Country
	}
	if patch.PhoneNumber != nil {
		p.Contact.PhoneNumber = patch.PhoneNumber
	}
	if patch.Department != nil {
		p.CompanyStatus.Department = patch.Department
	}
	if patch.Position != nil {
		p.CompanyStatus.Position = patch.Position
	}
	if patch.Skills != nil {
		p.Skills = patch.Skills
	}
	if patch.Descriptions != nil {
		p.Descriptions = patch.Descriptions
	}
	if patch.Motivation != nil {
		p.Motivation = patch.Motivation
	}
	if patch.Availability != nil {
		p.Availability = patch.Availability
	}
}

// ApplyNotes merges the HR-only patch.
func (p *Profile) ApplyNotes(patch EnterprizeNotesPatch) {
	if patch.LegalStatus != nil {
		p.Notes.LegalStatus = patch.LegalStatus
	}
	if patch.ExitNotes != nil {
		p.Notes.ExitNotes = patch.ExitNotes
	}
	if patch.EnterDate != nil {
		p.Notes.EnterDate = patch.EnterDate
	}
	if patch.ExitDate != nil {
		p.Notes.ExitDate = patch.ExitDate
	}
}
