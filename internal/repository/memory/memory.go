// Package memory holds pure in-memory repository implementations with the
// same observable behavior as the Postgres-backed ones, including the error
// types raised. Service tests and side-effect-free local runs use them.
package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// AuditRecord mirrors a system_events row.
type AuditRecord struct {
	StreamReference string
	Name            events.Name
	Event           events.DomainEvent
}

// EnterprizeRepository is the in-memory tenant store.
type EnterprizeRepository struct {
	mu          sync.Mutex
	bySubdomain map[string]*domain.Enterprize
}

// NewEnterprizeRepository creates an empty tenant store.
func NewEnterprizeRepository() *EnterprizeRepository {
	return &EnterprizeRepository{bySubdomain: map[string]*domain.Enterprize{}}
}

var _ repository.EnterprizeRepository = (*EnterprizeRepository)(nil)

func (r *EnterprizeRepository) Create(_ context.Context, enterprize *domain.Enterprize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySubdomain[enterprize.Subdomain]; ok {
		return fmt.Errorf("subdomain %q: %w", enterprize.Subdomain, domain.ErrEnterprizeExists)
	}
	r.bySubdomain[enterprize.Subdomain] = enterprize
	return nil
}

func (r *EnterprizeRepository) RetrieveBySubdomain(_ context.Context, subdomain string) (*domain.Enterprize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enterprize, ok := r.bySubdomain[subdomain]
	if !ok {
		return nil, fmt.Errorf("subdomain %q: %w", subdomain, domain.ErrEnterprizeNotFound)
	}
	return enterprize, nil
}

// ProfileRepository is the in-memory profile store. It records saved domain
// events as audit records, like the Postgres implementation does.
type ProfileRepository struct {
	mu          sync.Mutex
	byReference map[string]*domain.Profile
	audit       []AuditRecord
}

// NewProfileRepository creates an empty profile store.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byReference: map[string]*domain.Profile{}}
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) Save(_ context.Context, profile *domain.Profile, produced ...events.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.User != nil {
		for _, other := range r.byReference {
			if other.Reference == profile.Reference || other.User == nil {
				continue
			}
			if strings.EqualFold(other.User.Username, profile.User.Username) {
				return fmt.Errorf("username %q: %w", profile.User.Username, domain.ErrUsernameExists)
			}
		}
	}

	r.byReference[profile.Reference] = profile
	for _, event := range produced {
		r.audit = append(r.audit, AuditRecord{
			StreamReference: profile.Reference,
			Name:            event.EventName(),
			Event:           event,
		})
	}
	return nil
}

// AuditLog returns the audit records appended for the given stream.
func (r *ProfileRepository) AuditLog(streamReference string) []AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []AuditRecord
	for _, record := range r.audit {
		if record.StreamReference == streamReference {
			records = append(records, record)
		}
	}
	return records
}

func (r *ProfileRepository) RetrieveByReference(_ context.Context, reference string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.byReference[reference]
	if !ok {
		return nil, fmt.Errorf("reference %q: %w", reference, domain.ErrUserNotFound)
	}
	return profile, nil
}

func (r *ProfileRepository) RetrieveByUsername(_ context.Context, username string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupUsername(username)
}

func (r *ProfileRepository) lookupUsername(username string) (*domain.Profile, error) {
	for _, profile := range r.byReference {
		if profile.User != nil && strings.EqualFold(profile.User.Username, username) {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("username %q: %w", username, domain.ErrUsernameNotFound)
}

func (r *ProfileRepository) RetrieveForAdmin(_ context.Context, adminUsername string) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, err := r.lookupUsername(adminUsername)
	if err != nil {
		return nil, err
	}

	var profiles []*domain.Profile
	for _, profile := range r.byReference {
		if !profile.Enterprize.Equal(admin.Enterprize) || profile.User == nil {
			continue
		}
		if profile.User.Role == domain.RoleUser && profile.User.IsActive {
			profiles = append(profiles, profile)
		}
	}
	sortNewestFirst(profiles)
	return profiles, nil
}

func (r *ProfileRepository) RetrieveInvitedForAdmin(_ context.Context, adminUsername string) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, err := r.lookupUsername(adminUsername)
	if err != nil {
		return nil, err
	}

	var profiles []*domain.Profile
	for _, profile := range r.byReference {
		if !profile.Enterprize.Equal(admin.Enterprize) || profile.User == nil {
			continue
		}
		if profile.User.Invited != nil {
			profiles = append(profiles, profile)
		}
	}
	sortNewestFirst(profiles)
	return profiles, nil
}

func (r *ProfileRepository) DashboardStatistics(_ context.Context, adminUsername string) (*domain.DashboardStatistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, err := r.lookupUsername(adminUsername)
	if err != nil {
		return nil, err
	}

	var stats domain.DashboardStatistics
	for _, profile := range r.byReference {
		if !profile.Enterprize.Equal(admin.Enterprize) || profile.User == nil {
			continue
		}
		user := profile.User
		if user.PasswordHash != nil {
			stats.TotalRegistrations++
		}
		if user.Activated != nil && user.IsActive {
			stats.ActiveRegistrations++
		}
		if user.Invited != nil {
			stats.TotalInvitations++
			if user.Activated != nil && user.IsActive {
				stats.AcceptedInvitations++
			}
		}
	}
	return &stats, nil
}

func (r *ProfileRepository) UploadPhoto(_ context.Context, profile *domain.Profile, blob io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, blob); err != nil {
		return "", err
	}
	url := "memory://photos/" + profile.Reference
	profile.PhotoURL = &url
	return url, nil
}

func (r *ProfileRepository) DeletePhoto(_ context.Context, profile *domain.Profile) error {
	profile.PhotoURL = nil
	return nil
}

func sortNewestFirst(profiles []*domain.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Created.After(profiles[j].Created)
	})
}
