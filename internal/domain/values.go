package domain

import "time"

// Gender enumerates self-reported gender options.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// LegalStatus enumerates HR leave/exit categories. Visible to admins only.
type LegalStatus string

const (
	LegalStatusParentalLeave    LegalStatus = "parental_leave"
	LegalStatusEducationalLeave LegalStatus = "educational_leave"
	LegalStatusSickLeave        LegalStatus = "sick_leave"
	LegalStatusRetirement       LegalStatus = "retirement"
	LegalStatusOther            LegalStatus = "other"
)

// Availability enumerates how approachable a profile wants to be.
type Availability string

const (
	AvailabilityAvailable     Availability = "available"
	AvailabilityPartial       Availability = "partial"
	AvailabilityBooked        Availability = "booked"
	AvailabilityNotInterested Availability = "not_interested"
)

// Motivation enumerates what a profile is looking for on the platform.
type Motivation string

const (
	MotivationMentor     Motivation = "mentor"
	MotivationMentee     Motivation = "mentee"
	MotivationConsulting Motivation = "consulting"
	MotivationShortTerm  Motivation = "short_term"
	MotivationProject    Motivation = "project"
	MotivationCoffee     Motivation = "coffee"
	MotivationLunch      Motivation = "lunch"
	MotivationJob        Motivation = "job"
	MotivationTraining   Motivation = "training"
)

// Role is the three-tier flat user role.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Credentials carries a username and an optional plaintext password.
// The plaintext never leaves the authentication/registration flows.
type Credentials struct {
	Username      string
	PlainPassword *string
}

// FullName is a structured person name.
type FullName struct {
	FirstName string
	LastName  string
}

// Address is a postal address. All fields optional.
type Address struct {
	Street  *string
	ZipCode *string
	Town    *string
	Country *string
}

// Contact groups address and phone contact data.
type Contact struct {
	Address     Address
	PhoneNumber *string
}

// CompanyStatus describes the position held within the enterprize.
type CompanyStatus struct {
	Department *string
	Position   *string
}

// EnterprizeNotes are HR-only fields never exposed to regular users.
type EnterprizeNotes struct {
	LegalStatus *LegalStatus
	ExitNotes   *string
	EnterDate   *time.Time
	ExitDate    *time.Time
}

// PostContent is the textual payload shared by all post variants.
type PostContent struct {
	Title *string
	Body  string
}

// EventContent is the payload of a calendar event.
type EventContent struct {
	StartsAt time.Time
	EndsAt   time.Time
	Location string
	Title    string
	Body     string
}

// ProfilePatch lists exactly the public profile fields an update may touch.
// Nil pointers and nil slices leave the current value in place.
type ProfilePatch struct {
	FirstName    *string
	LastName     *string
	Birthdate    *time.Time
	Gender       *Gender
	Street       *string
	ZipCode      *string
	Town         *string
	Country      *string
	PhoneNumber  *string
	Department   *string
	Position     *string
	Skills       []string
	Descriptions []string
	Motivation   []Motivation
	Availability *Availability
}

// EnterprizeNotesPatch lists the updatable HR-only fields.
type EnterprizeNotesPatch struct {
	LegalStatus *LegalStatus
	ExitNotes   *string
	EnterDate   *time.Time
	ExitDate    *time.Time
}

// DashboardStatistics aggregates tenant-scoped registration counters.
type DashboardStatistics struct {
	TotalRegistrations  int
	ActiveRegistrations int
	TotalInvitations    int
	AcceptedInvitations int
}
