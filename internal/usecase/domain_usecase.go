package usecase

import (
	"context"

	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/entity"
)

// DomainUsecase defines the interface for reading linked domain profiles.
type DomainUsecase interface {
	ListDomains(ctx context.Context, userID string) ([]*entity.DomainProfile, error)
	// GetDomain returns the profile only when userID owns it.
	GetDomain(ctx context.Context, userID, domainID string) (*entity.DomainProfile, error)
	// Catalog lists every supported domain with its display colors.
	Catalog() []catalog.Definition
}
