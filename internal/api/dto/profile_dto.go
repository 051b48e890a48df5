package dto

import (
	"time"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// ProfileResponse is the public representation of a profile.
type ProfileResponse struct {
	Reference    string               `json:"reference"`
	Created      time.Time            `json:"created"`
	Username     string               `json:"username,omitempty"`
	FirstName    *string              `json:"first_name,omitempty"`
	LastName     *string              `json:"last_name,omitempty"`
	Birthdate    *time.Time           `json:"birthdate,omitempty"`
	Gender       *domain.Gender       `json:"gender,omitempty"`
	Street       *string              `json:"street,omitempty"`
	ZipCode      *string              `json:"zip_code,omitempty"`
	Town         *string              `json:"town,omitempty"`
	Country      *string              `json:"country,omitempty"`
	PhoneNumber  *string              `json:"phone_number,omitempty"`
	Department   *string              `json:"department,omitempty"`
	Position     *string              `json:"position,omitempty"`
	PhotoURL     *string              `json:"photo_url,omitempty"`
	Skills       []string             `json:"skills,omitempty"`
	Descriptions []string             `json:"descriptions,omitempty"`
	Motivation   []domain.Motivation  `json:"motivation,omitempty"`
	Availability *domain.Availability `json:"availability,omitempty"`
}

// NewProfileResponse maps the entity's public fields.
func NewProfileResponse(profile *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		Reference:    profile.Reference,
		Created:      profile.Created,
		Username:     profile.Username(),
		Birthdate:    profile.Birthdate,
		Gender:       profile.Gender,
		Street:       profile.Contact.Address.Street,
		ZipCode:      profile.Contact.Address.ZipCode,
		Town:         profile.Contact.Address.Town,
		Country:      profile.Contact.Address.Country,
		PhoneNumber:  profile.Contact.PhoneNumber,
		Department:   profile.CompanyStatus.Department,
		Position:     profile.CompanyStatus.Position,
		PhotoURL:     profile.PhotoURL,
		Skills:       profile.Skills,
		Descriptions: profile.Descriptions,
		Motivation:   profile.Motivation,
		Availability: profile.Availability,
	}
	if profile.FullName != nil {
		resp.FirstName = &profile.FullName.FirstName
		resp.LastName = &profile.FullName.LastName
	}
	return resp
}

// NewProfileResponses maps a list of profiles.
func NewProfileResponses(profiles []*domain.Profile) []ProfileResponse {
	responses := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, NewProfileResponse(profile))
	}
	return responses
}

// ProfileUpdateRequest carries the updatable public fields. Absent fields
// keep their current value.
type ProfileUpdateRequest struct {
	FirstName    *string              `json:"first_name"`
	LastName     *string              `json:"last_name"`
	Birthdate    *time.Time           `json:"birthdate"`
	Gender       *domain.Gender       `json:"gender"`
	Street       *string              `json:"street"`
	ZipCode      *string              `json:"zip_code"`
	Town         *string              `json:"town"`
	Country      *string              `json:"country"`
	PhoneNumber  *string              `json:"phone_number"`
	Department   *string              `json:"department"`
	Position     *string              `json:"position"`
	Skills       []string             `json:"skills"`
	Descriptions []string             `json:"descriptions"`
	Motivation   []domain.Motivation  `json:"motivation"`
	Availability *domain.Availability `json:"availability"`
}

// Patch converts the request to a domain patch.
func (r ProfileUpdateRequest) Patch() domain.ProfilePatch {
	return domain.ProfilePatch{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Birthdate:    r.Birthdate,
		Gender:       r.Gender,
		Street:       r.Street,
		ZipCode:      r.ZipCode,
		Town:         r.Town,
		Country:      r.Country,
		PhoneNumber:  r.PhoneNumber,
		Department:   r.Department,
		Position:     r.Position,
		Skills:       r.Skills,
		Descriptions: r.Descriptions,
		Motivation:   r.Motivation,
		Availability: r.Availability,
	}
}

// AdminProfileResponse extends the public representation with the HR-only
// enterprize notes. Served to admins only.
type AdminProfileResponse struct {
	ProfileResponse
	LegalStatus *domain.LegalStatus `json:"legal_status,omitempty"`
	ExitNotes   *string             `json:"exit_notes,omitempty"`
	EnterDate   *time.Time          `json:"enter_date,omitempty"`
	ExitDate    *time.Time          `json:"exit_date,omitempty"`
}

// NewAdminProfileResponse maps the entity including the notes.
func NewAdminProfileResponse(profile *domain.Profile) AdminProfileResponse {
	return AdminProfileResponse{
		ProfileResponse: NewProfileResponse(profile),
		LegalStatus:     profile.Notes.LegalStatus,
		ExitNotes:       profile.Notes.ExitNotes,
		EnterDate:       profile.Notes.EnterDate,
		ExitDate:        profile.Notes.ExitDate,
	}
}

// NotesUpdateRequest carries the HR-only fields admins may edit.
type NotesUpdateRequest struct {
	LegalStatus *domain.LegalStatus `json:"legal_status"`
	ExitNotes   *string             `json:"exit_notes"`
	EnterDate   *time.Time          `json:"enter_date"`
	ExitDate    *time.Time          `json:"exit_date"`
}

// Patch converts the request to a domain patch.
func (r NotesUpdateRequest) Patch() domain.EnterprizeNotesPatch {
	return domain.EnterprizeNotesPatch{
		LegalStatus: r.LegalStatus,
		ExitNotes:   r.ExitNotes,
		EnterDate:   r.EnterDate,
		ExitDate:    r.ExitDate,
	}
}

// InviteRequest payload for admin invitations.
type InviteRequest struct {
	Email string `json:"email"`
}

// DashboardResponse aggregates the admin dashboard counters.
type DashboardResponse struct {
	TotalRegistrations  int `json:"total_registrations"`
	ActiveRegistrations int `json:"active_registrations"`
	TotalInvitations    int `json:"total_invitations"`
	AcceptedInvitations int `json:"accepted_invitations"`
}
