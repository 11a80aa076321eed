package impl

import (
	"context"
	"log/slog"

	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/errors"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase"
)

// domainService implements the DomainUsecase interface.
type domainService struct {
	api     *interceptor.Interceptor
	catalog *catalog.Registry
	logger  *slog.Logger
}

// NewDomainService is the constructor for domainService.
func NewDomainService(api *interceptor.Interceptor, registry *catalog.Registry, logger *slog.Logger) usecase.DomainUsecase {
	return &domainService{
		api:     api,
		catalog: registry,
		logger:  logger,
	}
}

// ListDomains returns the profiles linked to userID.
func (srv *domainService) ListDomains(ctx context.Context, userID string) ([]*entity.DomainProfile, error) {
	domains, err := srv.api.GetUserDomains(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list domains")
	}

	return domains, nil
}

// GetDomain returns one profile of userID. Profiles of other users read as not found.
func (srv *domainService) GetDomain(ctx context.Context, userID, domainID string) (*entity.DomainProfile, error) {
	return ownedDomain(ctx, srv.api, userID, domainID)
}

// Catalog lists the supported domains in registration order.
func (srv *domainService) Catalog() []catalog.Definition {
	return srv.catalog.List()
}

func ownedDomain(ctx context.Context, api *interceptor.Interceptor, userID, domainID string) (*entity.DomainProfile, error) {
	domain, err := api.GetDomainProfile(ctx, domainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get domain")
	}

	if domain.UserID != userID {
		return nil, errors.Wrapf(domainerrors.ErrDomainNotFound, "domain %q", domainID)
	}

	return domain, nil
}
