package usecase

import "context"

// FixtureStatus summarizes the fixture service for development tooling.
type FixtureStatus struct {
	State       string
	UserID      string
	DomainCount int
	EventCount  int
}

// FixtureUsecase defines development-only fixture maintenance.
type FixtureUsecase interface {
	Status(ctx context.Context) (*FixtureStatus, error)
	Reset(ctx context.Context) (*FixtureStatus, error)
	Clear(ctx context.Context) error
}
