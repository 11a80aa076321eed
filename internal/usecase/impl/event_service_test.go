package impl

import (
	"context"
	"testing"

	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/mock/factory"
	"aliascore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_EventsForDomain(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	events, err := svc.EventsForDomain(context.Background(), testUserID, testDomainID)
	require.NoError(t, err)

	assert.Len(t, events, factory.DefaultEventsPerDomain)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].DateTime.Before(events[i-1].DateTime), "events must be sorted by date")
	}
}

func TestEventService_EventsForDomain_UnknownDomain(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	_, err := svc.EventsForDomain(context.Background(), testUserID, "mock-nope")

	assert.ErrorIs(t, err, domainerrors.ErrDomainNotFound)
}

func TestEventService_EventsForDomain_NotOwned(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	events, err := svc.EventsForDomain(context.Background(), "someone-else", testDomainID)

	assert.ErrorIs(t, err, domainerrors.ErrDomainNotFound)
	assert.Nil(t, events)
}

func TestEventService_EventsNearLocation_Defaults(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	nearby, err := svc.EventsNearLocation(context.Background(), usecase.NearbyEventsInput{
		Latitude:  factory.BaseLatitude,
		Longitude: factory.BaseLongitude,
	})
	require.NoError(t, err)

	// Every event sits within 30 km of the base point, inside the 20 mile default.
	assert.Len(t, nearby, 2*factory.DefaultEventsPerDomain)
	for i, n := range nearby {
		assert.LessOrEqual(t, n.DistanceMiles, DefaultRadiusMiles)
		if i > 0 {
			assert.GreaterOrEqual(t, n.DistanceMiles, nearby[i-1].DistanceMiles)
		}
	}
}

func TestEventService_EventsNearLocation_Limit(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	nearby, err := svc.EventsNearLocation(context.Background(), usecase.NearbyEventsInput{
		Latitude:  factory.BaseLatitude,
		Longitude: factory.BaseLongitude,
		Limit:     3,
	})
	require.NoError(t, err)

	assert.Len(t, nearby, 3)
}

func TestEventService_EventsNearLocation_FarAway(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	// New York
	nearby, err := svc.EventsNearLocation(context.Background(), usecase.NearbyEventsInput{
		Latitude:    40.7128,
		Longitude:   -74.0060,
		RadiusMiles: 50,
	})
	require.NoError(t, err)

	assert.Empty(t, nearby)
}

func TestEventService_EventsNearLocation_InvalidCoordinates(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewEventService(fx.api, fx.logger)

	_, err := svc.EventsNearLocation(context.Background(), usecase.NearbyEventsInput{Latitude: 91})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
