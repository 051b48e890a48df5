package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// EventRepository persists calendar events. Admin-scoped retrieval mirrors
// the post pattern: wrong tenant reads as not-found.
type EventRepository interface {
	Save(ctx context.Context, event *domain.Event) error
	Retrieve(ctx context.Context, reference string) (*domain.Event, error)
	RetrieveByAdmin(ctx context.Context, reference, adminUsername string) (*domain.Event, error)
	ListForEnterprize(ctx context.Context, enterprizeReference string) ([]*domain.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `
        ev.reference, ev.created, ev.deleted, ev.title, ev.body, ev.location, ev.starts_at, ev.ends_at,
        o.reference, o.first_name, o.last_name,
        u.username, u.role,
        e.reference, e.name, e.subdomain, e.created`

const eventFrom = `
        FROM calendar_events ev
        JOIN profiles o ON o.reference = ev.organizer_reference
        JOIN enterprizes e ON e.reference = o.enterprize_reference
        LEFT JOIN users u ON u.profile_reference = o.reference`

func (r *eventRepository) Save(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO calendar_events (reference, created, deleted, organizer_reference, title, body, location, starts_at, ends_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (reference) DO UPDATE SET
            deleted=EXCLUDED.deleted, title=EXCLUDED.title, body=EXCLUDED.body,
            location=EXCLUDED.location, starts_at=EXCLUDED.starts_at, ends_at=EXCLUDED.ends_at`

	_, err := r.pool.Exec(ctx, query,
		event.Reference,
		event.Created,
		event.Deleted,
		event.Organizer.Reference,
		event.Content.Title,
		event.Content.Body,
		event.Content.Location,
		event.Content.StartsAt,
		event.Content.EndsAt,
	)
	return err
}

func (r *eventRepository) Retrieve(ctx context.Context, reference string) (*domain.Event, error) {
	query := "SELECT" + eventColumns + eventFrom + " WHERE ev.reference=$1"
	return r.fetchSingle(ctx, query, reference)
}

func (r *eventRepository) RetrieveByAdmin(ctx context.Context, reference, adminUsername string) (*domain.Event, error) {
	query := "SELECT" + eventColumns + eventFrom + `
        WHERE ev.reference=$1 AND e.reference = (
            SELECT e2.reference
            FROM users u2
            JOIN profiles p2 ON p2.reference = u2.profile_reference
            JOIN enterprizes e2 ON e2.reference = p2.enterprize_reference
            WHERE LOWER(u2.username)=LOWER($2)
        )`
	return r.fetchSingle(ctx, query, reference, adminUsername)
}

func (r *eventRepository) ListForEnterprize(ctx context.Context, enterprizeReference string) ([]*domain.Event, error) {
	query := "SELECT" + eventColumns + eventFrom + `
        WHERE e.reference=$1 AND ev.deleted IS NULL
        ORDER BY ev.created DESC`

	rows, err := r.pool.Query(ctx, query, enterprizeReference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, event)
	}
	return items, rows.Err()
}

func (r *eventRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Event, error) {
	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event: %w", domain.ErrEventNotFound)
		}
		return nil, err
	}
	return event, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		event      domain.Event
		organizer  domain.Profile
		enterprize domain.Enterprize

		firstName, lastName *string
		username, role      *string
	)

	if err := row.Scan(
		&event.Reference, &event.Created, &event.Deleted,
		&event.Content.Title, &event.Content.Body, &event.Content.Location,
		&event.Content.StartsAt, &event.Content.EndsAt,
		&organizer.Reference, &firstName, &lastName,
		&username, &role,
		&enterprize.Reference, &enterprize.Name, &enterprize.Subdomain, &enterprize.Created,
	); err != nil {
		return nil, err
	}

	if firstName != nil || lastName != nil {
		name := domain.FullName{}
		if firstName != nil {
			name.FirstName = *firstName
		}
		if lastName != nil {
			name.LastName = *lastName
		}
		organizer.FullName = &name
	}
	if username != nil {
		organizer.User = &domain.User{Username: *username, Role: domain.Role(*role)}
	}
	organizer.Enterprize = &enterprize
	event.Organizer = &organizer
	return &event, nil
}
