package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/storage"
)

// ProfileRepository persists profiles with their embedded user. Save also
// appends the produced domain events as durable audit records keyed by the
// profile reference.
type ProfileRepository interface {
	Save(ctx context.Context, profile *domain.Profile, produced ...events.DomainEvent) error
	RetrieveByReference(ctx context.Context, reference string) (*domain.Profile, error)
	RetrieveByUsername(ctx context.Context, username string) (*domain.Profile, error)
	RetrieveForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error)
	RetrieveInvitedForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error)
	DashboardStatistics(ctx context.Context, adminUsername string) (*domain.DashboardStatistics, error)
	UploadPhoto(ctx context.Context, profile *domain.Profile, blob io.Reader, contentType string) (string, error)
	DeletePhoto(ctx context.Context, profile *domain.Profile) error
}

type profileRepository struct {
	pool   *pgxpool.Pool
	photos storage.PhotoStore
}

// NewProfileRepository returns a Postgres-backed implementation delegating
// photo blobs to the given object store.
func NewProfileRepository(pool *pgxpool.Pool, photos storage.PhotoStore) ProfileRepository {
	return &profileRepository{pool: pool, photos: photos}
}

// profileColumns is the flat persistence record the structured value objects
// are mapped from. The repository boundary owns this mapping; entities never
// see column layout.
const profileColumns = `
        p.reference, p.created, p.deleted, p.first_name, p.last_name, p.birthdate, p.gender,
        p.street, p.zip_code, p.town, p.country, p.phone_number, p.department, p.position,
        p.photo_url, p.skills, p.descriptions, p.motivation, p.availability,
        p.legal_status, p.exit_notes, p.enter_date, p.exit_date,
        e.reference, e.name, e.subdomain, e.created,
        u.reference, u.created, u.username, u.password_hash, u.is_active, u.activated, u.invited, u.role`

const profileFrom = `
        FROM profiles p
        JOIN enterprizes e ON e.reference = p.enterprize_reference
        LEFT JOIN users u ON u.profile_reference = p.reference`

func (r *profileRepository) Save(ctx context.Context, profile *domain.Profile, produced ...events.DomainEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const upsertProfile = `
        INSERT INTO profiles (reference, created, deleted, enterprize_reference,
            first_name, last_name, birthdate, gender,
            street, zip_code, town, country, phone_number, department, position,
            photo_url, skills, descriptions, motivation, availability,
            legal_status, exit_notes, enter_date, exit_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
        ON CONFLICT (reference) DO UPDATE SET
            deleted=EXCLUDED.deleted,
            first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name,
            birthdate=EXCLUDED.birthdate, gender=EXCLUDED.gender,
            street=EXCLUDED.street, zip_code=EXCLUDED.zip_code, town=EXCLUDED.town,
            country=EXCLUDED.country, phone_number=EXCLUDED.phone_number,
            department=EXCLUDED.department, position=EXCLUDED.position,
            photo_url=EXCLUDED.photo_url, skills=EXCLUDED.skills,
            descriptions=EXCLUDED.descriptions, motivation=EXCLUDED.motivation,
            availability=EXCLUDED.availability, legal_status=EXCLUDED.legal_status,
            exit_notes=EXCLUDED.exit_notes, enter_date=EXCLUDED.enter_date,
            exit_date=EXCLUDED.exit_date`

	var firstName, lastName *string
	if profile.FullName != nil {
		firstName = &profile.FullName.FirstName
		lastName = &profile.FullName.LastName
	}

	if _, err := tx.Exec(ctx, upsertProfile,
		profile.Reference,
		profile.Created,
		profile.Deleted,
		profile.Enterprize.Reference,
		firstName,
		lastName,
		profile.Birthdate,
		profile.Gender,
		profile.Contact.Address.Street,
		profile.Contact.Address.ZipCode,
		profile.Contact.Address.Town,
		profile.Contact.Address.Country,
		profile.Contact.PhoneNumber,
		profile.CompanyStatus.Department,
		profile.CompanyStatus.Position,
		profile.PhotoURL,
		jsonOrEmpty(profile.Skills),
		jsonOrEmpty(profile.Descriptions),
		jsonOrEmpty(profile.Motivation),
		profile.Availability,
		profile.Notes.LegalStatus,
		profile.Notes.ExitNotes,
		profile.Notes.EnterDate,
		profile.Notes.ExitDate,
	); err != nil {
		return err
	}

	if profile.User != nil {
		const upsertUser = `
            INSERT INTO users (reference, created, profile_reference, username,
                password_hash, is_active, activated, invited, role)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
            ON CONFLICT (reference) DO UPDATE SET
                username=EXCLUDED.username, password_hash=EXCLUDED.password_hash,
                is_active=EXCLUDED.is_active, activated=EXCLUDED.activated,
                invited=EXCLUDED.invited, role=EXCLUDED.role`

		user := profile.User
		if _, err := tx.Exec(ctx, upsertUser,
			user.Reference,
			user.Created,
			profile.Reference,
			user.Username,
			user.PasswordHash,
			user.IsActive,
			user.Activated,
			user.Invited,
			user.Role,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("username %q: %w", user.Username, domain.ErrUsernameExists)
			}
			return err
		}
	}

	for _, event := range produced {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.EventName(), err)
		}
		const insertAudit = `
            INSERT INTO system_events (stream_reference, name, payload)
            VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertAudit, profile.Reference, string(event.EventName()), payload); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *profileRepository) RetrieveByReference(ctx context.Context, reference string) (*domain.Profile, error) {
	query := "SELECT" + profileColumns + profileFrom + " WHERE p.reference=$1"
	profile, err := r.fetchSingle(ctx, query, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reference %q: %w", reference, domain.ErrUserNotFound)
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) RetrieveByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := "SELECT" + profileColumns + profileFrom + " WHERE LOWER(u.username)=LOWER($1)"
	profile, err := r.fetchSingle(ctx, query, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("username %q: %w", username, domain.ErrUsernameNotFound)
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) RetrieveForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error) {
	admin, err := r.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, err
	}

	query := "SELECT" + profileColumns + profileFrom + `
        WHERE p.enterprize_reference=$1 AND u.role=$2 AND u.is_active
        ORDER BY p.created DESC`
	return r.fetchMany(ctx, query, admin.Enterprize.Reference, domain.RoleUser)
}

func (r *profileRepository) RetrieveInvitedForAdmin(ctx context.Context, adminUsername string) ([]*domain.Profile, error) {
	admin, err := r.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, err
	}

	query := "SELECT" + profileColumns + profileFrom + `
        WHERE p.enterprize_reference=$1 AND u.invited IS NOT NULL
        ORDER BY p.created DESC`
	return r.fetchMany(ctx, query, admin.Enterprize.Reference)
}

func (r *profileRepository) DashboardStatistics(ctx context.Context, adminUsername string) (*domain.DashboardStatistics, error) {
	admin, err := r.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, err
	}

	const query = `
        SELECT
            COUNT(*) FILTER (WHERE u.password_hash IS NOT NULL),
            COUNT(*) FILTER (WHERE u.activated IS NOT NULL AND u.is_active),
            COUNT(*) FILTER (WHERE u.invited IS NOT NULL),
            COUNT(*) FILTER (WHERE u.invited IS NOT NULL AND u.activated IS NOT NULL AND u.is_active)
        FROM profiles p
        JOIN users u ON u.profile_reference = p.reference
        WHERE p.enterprize_reference=$1`

	var stats domain.DashboardStatistics
	if err := r.pool.QueryRow(ctx, query, admin.Enterprize.Reference).Scan(
		&stats.TotalRegistrations,
		&stats.ActiveRegistrations,
		&stats.TotalInvitations,
		&stats.AcceptedInvitations,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *profileRepository) UploadPhoto(ctx context.Context, profile *domain.Profile, blob io.Reader, contentType string) (string, error) {
	url, err := r.photos.Upload(ctx, profile.Reference, blob, contentType)
	if err != nil {
		return "", err
	}

	profile.PhotoURL = &url
	const query = `UPDATE profiles SET photo_url=$1 WHERE reference=$2`
	if _, err := r.pool.Exec(ctx, query, url, profile.Reference); err != nil {
		return "", err
	}
	return url, nil
}

func (r *profileRepository) DeletePhoto(ctx context.Context, profile *domain.Profile) error {
	if err := r.photos.Delete(ctx, profile.Reference); err != nil {
		return err
	}

	profile.PhotoURL = nil
	const query = `UPDATE profiles SET photo_url=NULL WHERE reference=$1`
	_, err := r.pool.Exec(ctx, query, profile.Reference)
	return err
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanProfile(row)
}

func (r *profileRepository) fetchMany(ctx context.Context, query string, args ...any) ([]*domain.Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// scanProfile reconstitutes the structured entity from the flat row.
func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		profile    domain.Profile
		enterprize domain.Enterprize

		firstName, lastName *string
		gender              *string
		availability        *string
		legalStatus         *string

		userRef       *string
		userCreated   *time.Time
		username      *string
		passwordHash  *string
		isActive      *bool
		activated     *time.Time
		invited       *time.Time
		role          *string
	)

	if err := row.Scan(
		&profile.Reference, &profile.Created, &profile.Deleted,
		&firstName, &lastName, &profile.Birthdate, &gender,
		&profile.Contact.Address.Street, &profile.Contact.Address.ZipCode,
		&profile.Contact.Address.Town, &profile.Contact.Address.Country,
		&profile.Contact.PhoneNumber,
		&profile.CompanyStatus.Department, &profile.CompanyStatus.Position,
		&profile.PhotoURL, &profile.Skills, &profile.Descriptions,
		&profile.Motivation, &availability,
		&legalStatus, &profile.Notes.ExitNotes, &profile.Notes.EnterDate, &profile.Notes.ExitDate,
		&enterprize.Reference, &enterprize.Name, &enterprize.Subdomain, &enterprize.Created,
		&userRef, &userCreated, &username, &passwordHash, &isActive, &activated, &invited, &role,
	); err != nil {
		return nil, err
	}

	profile.Enterprize = &enterprize
	if firstName != nil || lastName != nil {
		name := domain.FullName{}
		if firstName != nil {
			name.FirstName = *firstName
		}
		if lastName != nil {
			name.LastName = *lastName
		}
		profile.FullName = &name
	}
	if gender != nil {
		g := domain.Gender(*gender)
		profile.Gender = &g
	}
	if availability != nil {
		a := domain.Availability(*availability)
		profile.Availability = &a
	}
	if legalStatus != nil {
		s := domain.LegalStatus(*legalStatus)
		profile.Notes.LegalStatus = &s
	}

	if userRef != nil {
		profile.User = &domain.User{
			Reference:    *userRef,
			Created:      *userCreated,
			Username:     *username,
			PasswordHash: passwordHash,
			IsActive:     *isActive,
			Activated:    activated,
			Invited:      invited,
			Role:         domain.Role(*role),
		}
	}
	return &profile, nil
}

func jsonOrEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
