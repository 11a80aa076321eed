package impl

import (
	"context"
	"testing"

	"aliascore/internal/mock/factory"
	"aliascore/internal/mock/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureService_Status(t *testing.T) {
	fx := createTestBackend(t)
	svc := NewFixtureService(fx.fixtures, fx.logger)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture.StateUninitialized.String(), status.State)
	assert.Empty(t, status.UserID)

	fx.initialize(t)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture.StateReady.String(), status.State)
	assert.Equal(t, testUserID, status.UserID)
	assert.Equal(t, 2, status.DomainCount)
	assert.Equal(t, 2*factory.DefaultEventsPerDomain, status.EventCount)
}

func TestFixtureService_ResetAndClear(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewFixtureService(fx.fixtures, fx.logger)

	status, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture.StateReady.String(), status.State)

	require.NoError(t, svc.Clear(context.Background()))

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture.StateUninitialized.String(), status.State)
}
