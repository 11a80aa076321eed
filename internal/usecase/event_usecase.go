package usecase

import (
	"context"

	"aliascore/internal/domain/entity"
)

// NearbyEventsInput defines a location search. Zero RadiusMiles and Limit select the defaults.
type NearbyEventsInput struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	Limit       int
}

// NearbyEvent is an event with its distance from the search point.
type NearbyEvent struct {
	Event         *entity.Event
	DistanceMiles float64
}

// EventUsecase defines the interface for event discovery.
type EventUsecase interface {
	EventsForDomain(ctx context.Context, userID, domainID string) ([]*entity.Event, error)
	EventsNearLocation(ctx context.Context, input NearbyEventsInput) ([]NearbyEvent, error)
}
