package dto

import (
	"time"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// EnterprizeCreateRequest payload for new tenants.
type EnterprizeCreateRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// EnterprizeResponse represents a tenant.
type EnterprizeResponse struct {
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	Created   time.Time `json:"created"`
}

// NewEnterprizeResponse maps the entity.
func NewEnterprizeResponse(enterprize *domain.Enterprize) EnterprizeResponse {
	return EnterprizeResponse{
		Reference: enterprize.Reference,
		Name:      enterprize.Name,
		Subdomain: enterprize.Subdomain,
		Created:   enterprize.Created,
	}
}
