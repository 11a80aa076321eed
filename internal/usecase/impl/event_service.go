package impl

import (
	"context"
	"log/slog"

	"aliascore/internal/domain/entity"
	"aliascore/internal/errors"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase"
	"aliascore/internal/util"
)

const (
	// DefaultRadiusMiles is the search radius of EventsNearLocation when none is given.
	DefaultRadiusMiles = 20.0
	// DefaultEventLimit caps EventsNearLocation results when no limit is given.
	DefaultEventLimit = 25
	// MaxEventLimit bounds any requested limit.
	MaxEventLimit = 100
)

// eventService implements the EventUsecase interface.
type eventService struct {
	api    *interceptor.Interceptor
	logger *slog.Logger
}

// NewEventService is the constructor for eventService.
func NewEventService(api *interceptor.Interceptor, logger *slog.Logger) usecase.EventUsecase {
	return &eventService{
		api:    api,
		logger: logger,
	}
}

// EventsForDomain returns the upcoming events of one of the user's profiles.
// Profiles of other users read as not found.
func (srv *eventService) EventsForDomain(ctx context.Context, userID, domainID string) ([]*entity.Event, error) {
	if _, err := ownedDomain(ctx, srv.api, userID, domainID); err != nil {
		return nil, err
	}

	events, err := srv.api.GetEventsForDomain(ctx, domainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get domain events")
	}

	srv.logger.DebugContext(ctx, "Loaded domain events",
		slog.String("userId", userID),
		slog.String("domainId", domainID),
		slog.Int("count", len(events)),
	)

	return events, nil
}

// EventsNearLocation returns events around a point, nearest first.
func (srv *eventService) EventsNearLocation(ctx context.Context, input usecase.NearbyEventsInput) ([]usecase.NearbyEvent, error) {
	radius := input.RadiusMiles
	if radius <= 0 {
		radius = DefaultRadiusMiles
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	limit = min(limit, MaxEventLimit)

	nearby, err := srv.api.GetEventsNearLocation(ctx, input.Latitude, input.Longitude, util.MilesToKilometers(radius))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find nearby events")
	}

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	out := make([]usecase.NearbyEvent, 0, len(nearby))
	for _, n := range nearby {
		out = append(out, usecase.NearbyEvent{
			Event:         n.Event,
			DistanceMiles: util.RoundTo(util.KilometersToMiles(n.DistanceKm), 2),
		})
	}

	return out, nil
}
