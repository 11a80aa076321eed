package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aliascore/config"
	"aliascore/internal/domain/entity"
	"aliascore/internal/domain/service"
	"aliascore/internal/errors"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase"
	"aliascore/internal/util"
)

// shareService implements the ShareUsecase interface.
type shareService struct {
	api     *interceptor.Interceptor
	qrcodes service.QRCodeService
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// NewShareService is the constructor for shareService.
func NewShareService(
	api *interceptor.Interceptor,
	qrcodes service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ShareUsecase {
	var baseURL string
	if cfg.Share != nil {
		baseURL = cfg.Share.BaseURL
	}

	return &shareService{
		api:     api,
		qrcodes: qrcodes,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// SharePayload builds the public view of one of the user's profiles.
func (srv *shareService) SharePayload(ctx context.Context, userID, domainID string) (*entity.SharePayload, error) {
	domain, err := ownedDomain(ctx, srv.api, userID, domainID)
	if err != nil {
		return nil, err
	}

	user, err := srv.api.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load share owner")
	}

	return &entity.SharePayload{
		Type:             entity.SharePayloadType,
		ShareSlug:        domain.ShareSlug,
		DomainKey:        domain.DomainKey,
		DisplayName:      user.DisplayName,
		PlatformUsername: domain.PlatformUsername,
		ShareURL:         srv.baseURL + "/" + domain.ShareSlug,
		Timestamp:        srv.now().UTC().Truncate(time.Second),
	}, nil
}

// ShareQR renders the share payload as a PNG QR code.
func (srv *shareService) ShareQR(ctx context.Context, userID, domainID string) ([]byte, error) {
	payload, err := srv.SharePayload(ctx, userID, domainID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodes.GenerateShareQR(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render share QR code")
	}

	srv.logger.DebugContext(ctx, "Rendered share QR code",
		slog.String("slug", payload.ShareSlug),
		slog.String("size", util.FormatBytes(int64(len(png)))),
	)

	return png, nil
}
