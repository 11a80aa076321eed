package impl

import (
	"context"
	"log/slog"

	"aliascore/internal/errors"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/usecase"
)

// fixtureService implements the FixtureUsecase interface.
type fixtureService struct {
	fixtures *fixture.Service
	logger   *slog.Logger
}

// NewFixtureService is the constructor for fixtureService.
func NewFixtureService(fixtures *fixture.Service, logger *slog.Logger) usecase.FixtureUsecase {
	return &fixtureService{
		fixtures: fixtures,
		logger:   logger,
	}
}

// Status reports the lifecycle state and, once ready, the fixture counts.
func (srv *fixtureService) Status(_ context.Context) (*usecase.FixtureStatus, error) {
	status := &usecase.FixtureStatus{State: srv.fixtures.State().String()}
	if srv.fixtures.State() != fixture.StateReady {
		return status, nil
	}

	snap, err := srv.fixtures.Snapshot()
	if err != nil {
		// Cleared between the two reads.
		return status, nil //nolint:nilerr
	}

	status.UserID = snap.User.ID
	status.DomainCount = len(snap.Domains)
	for _, group := range snap.Events {
		status.EventCount += len(group.Events)
	}

	return status, nil
}

// Reset regenerates the fixtures from the configured seed.
func (srv *fixtureService) Reset(ctx context.Context) (*usecase.FixtureStatus, error) {
	if err := srv.fixtures.Reset(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to reset fixtures")
	}

	srv.logger.WarnContext(ctx, "Fixtures reset through dev route")

	return srv.Status(ctx)
}

// Clear drops the fixtures from memory and storage.
func (srv *fixtureService) Clear(ctx context.Context) error {
	srv.fixtures.Clear(ctx)
	srv.logger.WarnContext(ctx, "Fixtures cleared through dev route")

	return nil
}
