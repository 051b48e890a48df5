package domain

import (
	"time"

	"github.com/google/uuid"
)

// Enterprize is the root tenant boundary. Every profile belongs to exactly
// one enterprize, permanently. Tenants are append-only: there is no update
// or delete operation.
type Enterprize struct {
	Reference string
	Name      string
	Subdomain string
	Created   time.Time
}

// NewEnterprize constructs a tenant with a fresh random reference.
func NewEnterprize(name, subdomain string) *Enterprize {
	return &Enterprize{
		Reference: uuid.NewString(),
		Name:      name,
		Subdomain: subdomain,
		Created:   time.Now().UTC(),
	}
}

// Equal compares tenant identity by reference.
func (e *Enterprize) Equal(other *Enterprize) bool {
	if e == nil || other == nil {
		return false
	}
	return e.Reference == other.Reference
}
