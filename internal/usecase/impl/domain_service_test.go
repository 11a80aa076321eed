package impl

import (
	"context"
	"testing"

	domainerrors "aliascore/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainService_ListDomains(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := fx.domains()

	domains, err := svc.ListDomains(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "mock-chess", domains[0].ID)
	assert.Equal(t, "mock-valorant", domains[1].ID)

	others, err := svc.ListDomains(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestDomainService_GetDomain(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := fx.domains()

	domain, err := svc.GetDomain(context.Background(), testUserID, testDomainID)
	require.NoError(t, err)
	assert.Equal(t, testDomainID, domain.ID)
	assert.Equal(t, testUserID, domain.UserID)
}

func TestDomainService_GetDomain_NotOwned(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := fx.domains()

	_, err := svc.GetDomain(context.Background(), "someone-else", testDomainID)

	assert.ErrorIs(t, err, domainerrors.ErrDomainNotFound)
}

func TestDomainService_GetDomain_Unknown(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := fx.domains()

	_, err := svc.GetDomain(context.Background(), testUserID, "mock-nope")

	assert.ErrorIs(t, err, domainerrors.ErrDomainNotFound)
}

func TestDomainService_Catalog(t *testing.T) {
	fx := createTestBackend(t)
	svc := fx.domains()

	defs := svc.Catalog()

	require.NotEmpty(t, defs)
	keys := make([]string, 0, len(defs))
	for _, def := range defs {
		keys = append(keys, def.Key)
	}
	assert.Contains(t, keys, "chess")
	assert.Contains(t, keys, "valorant")
}
