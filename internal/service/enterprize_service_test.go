package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

func TestCreateEnterprizeAndRetrieve(t *testing.T) {
	svc := service.NewEnterprizeService(memory.NewEnterprizeRepository())

	created, err := svc.Create(context.Background(), "ACME Corp", "acme")
	require.NoError(t, err)
	assert.NotEmpty(t, created.Reference)

	found, err := svc.RetrieveBySubdomain(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, found.Equal(created))

	_, err = svc.RetrieveBySubdomain(context.Background(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrEnterprizeNotFound)
}

func TestCreateEnterprizeRejectsDuplicateSubdomain(t *testing.T) {
	svc := service.NewEnterprizeService(memory.NewEnterprizeRepository())

	_, err := svc.Create(context.Background(), "ACME Corp", "acme")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "ACME Clone", "acme")
	assert.ErrorIs(t, err, domain.ErrEnterprizeExists)
}
