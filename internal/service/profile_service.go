package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// ProfileService manages profile records: creation, public and HR-only
// updates, photos, invitations and the admin dashboard.
type ProfileService struct {
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
}

// ProfileDependencies encapsulates repo requirements for profiles.
type ProfileDependencies struct {
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
}

// NewProfileService builds the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{profiles: deps.ProfileRepo, dispatcher: deps.Dispatcher}
}

// Create stores a fresh profile bound to the enterprize, without credentials.
func (s *ProfileService) Create(ctx context.Context, enterprize *domain.Enterprize, fullName *domain.FullName) (*domain.Profile, error) {
	profile := domain.NewProfile(enterprize, fullName)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RetrieveByUsername loads the profile owning the given username.
func (s *ProfileService) RetrieveByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return s.profiles.RetrieveByUsername(ctx, username)
}

// RetrieveByReferenceForAdmin loads a profile by reference on behalf of an
// admin, including the HR-only notes. A profile of another enterprize reads
// as not found.
func (s *ProfileService) RetrieveByReferenceForAdmin(ctx context.Context, reference, adminUsername string) (*domain.Profile, error) {
	admin, err := s.profiles.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, err
	}
	if admin.User == nil || !admin.User.IsAdmin() {
		return nil, domain.ErrUserNotAdmin
	}

	profile, err := s.profiles.RetrieveByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !profile.Enterprize.Equal(admin.Enterprize) {
		return nil, fmt.Errorf("reference %q: %w", reference, domain.ErrUserNotFound)
	}
	return profile, nil
}

// Update merges public profile fields from the patch and persists.
func (s *ProfileService) Update(ctx context.Context, username string, patch domain.ProfilePatch) (*domain.Profile, error) {
	profile, err := s.profiles.RetrieveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile.Apply(patch)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateNonPublic merges the HR-only enterprize notes, addressed by profile
// reference since the subject may have no user yet. The target must live in
// the admin's enterprize.
func (s *ProfileService) UpdateNonPublic(ctx context.Context, reference, adminUsername string, patch domain.EnterprizeNotesPatch) (*domain.Profile, error) {
	profile, err := s.RetrieveByReferenceForAdmin(ctx, reference, adminUsername)
	if err != nil {
		return nil, err
	}
	profile.ApplyNotes(patch)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadPhoto stores the photo blob and persists its public URL on the
// profile.
func (s *ProfileService) UploadPhoto(ctx context.Context, username string, blob io.Reader, contentType string) (string, error) {
	profile, err := s.profiles.RetrieveByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	url, err := s.profiles.UploadPhoto(ctx, profile, blob, contentType)
	if err != nil {
		return "", err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return "", err
	}
	return url, nil
}

// DeletePhoto removes the stored photo and clears the URL.
func (s *ProfileService) DeletePhoto(ctx context.Context, username string) error {
	profile, err := s.profiles.RetrieveByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.profiles.DeletePhoto(ctx, profile); err != nil {
		return err
	}
	return s.profiles.Save(ctx, profile)
}

// Invite lets an admin reserve a username (an email address) inside their
// enterprize. An unknown username gets a fresh preregistered profile; a known
// but not yet active one is re-invited; an active one is a conflict. Exactly
// one UserInvited event is recorded and dispatched per call.
func (s *ProfileService) Invite(ctx context.Context, emailAddress, creatorUsername string) (*domain.Profile, error) {
	creator, err := s.profiles.RetrieveByUsername(ctx, creatorUsername)
	if err != nil {
		return nil, err
	}
	if creator.User == nil || !creator.User.IsAdmin() {
		return nil, domain.ErrUserNotAdmin
	}

	profile, err := s.profiles.RetrieveByUsername(ctx, emailAddress)
	switch {
	case errors.Is(err, domain.ErrUsernameNotFound):
		profile = domain.NewProfile(creator.Enterprize, nil)
		if err := profile.PreregisterUsername(emailAddress); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case profile.User.IsActive:
		return nil, domain.ErrUserAlreadyExists
	default:
		// Not yet active; re-inviting restamps and resends, whether the
		// invitee has set a password or not.
	}

	event := profile.InviteToRegister(creator)
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListForAdmin returns the active plain users of the admin's enterprize.
func (s *ProfileService) ListForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error) {
	return s.profiles.RetrieveForAdmin(ctx, adminUsername)
}

// ListInvitedForAdmin returns the invited profiles of the admin's enterprize.
func (s *ProfileService) ListInvitedForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error) {
	return s.profiles.RetrieveInvitedForAdmin(ctx, adminUsername)
}

// Dashboard aggregates registration and invitation counters for the admin's
// enterprize.
func (s *ProfileService) Dashboard(ctx context.Context, adminUsername string) (*domain.DashboardStatistics, error) {
	return s.profiles.DashboardStatistics(ctx, adminUsername)
}
