package service

import (
	"context"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// EnterprizeService manages tenant lifecycle.
type EnterprizeService struct {
	enterprizes repository.EnterprizeRepository
}

// NewEnterprizeService builds the service.
func NewEnterprizeService(enterprizes repository.EnterprizeRepository) *EnterprizeService {
	return &EnterprizeService{enterprizes: enterprizes}
}

// Create registers a new tenant. Subdomains are unique across the system;
// a duplicate yields domain.ErrEnterprizeExists.
func (s *EnterprizeService) Create(ctx context.Context, name, subdomain string) (*domain.Enterprize, error) {
	enterprize := domain.NewEnterprize(name, subdomain)
	if err := s.enterprizes.Create(ctx, enterprize); err != nil {
		return nil, err
	}
	return enterprize, nil
}

// RetrieveBySubdomain resolves the tenant a request is addressed to.
func (s *EnterprizeService) RetrieveBySubdomain(ctx context.Context, subdomain string) (*domain.Enterprize, error) {
	return s.enterprizes.RetrieveBySubdomain(ctx, subdomain)
}
