package main

import (
	"context"
	"log/slog"
	"os"

	"aliascore/config"
	"aliascore/internal/delivery"
	"aliascore/internal/delivery/api"
	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/router/handler"
	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/repository"
	"aliascore/internal/domain/service"
	"aliascore/internal/infra/auth"
	"aliascore/internal/infra/auth/google"
	"aliascore/internal/infra/kvstore"
	logs "aliascore/internal/infra/log"
	"aliascore/internal/infra/qrcode"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectMock(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		kvstore.New,
		catalog.Default,
	)
}

func injectMock() fx.Option {
	return fx.Provide(
		newFixtureService,
		newLatency,
		interceptor.New,
	)
}

// newFixtureService builds the fixture service and loads or generates the
// fixtures before the server starts.
func newFixtureService(
	lc fx.Lifecycle,
	cfg *config.Config,
	store repository.KeyValueStore,
	registry *catalog.Registry,
	logger *slog.Logger,
) *fixture.Service {
	opts := fixture.Options{Catalog: registry}
	if cfg.Mock != nil {
		opts.Seed = cfg.Mock.Seed
		opts.EventsPerDomain = cfg.Mock.EventsPerDomain
	}

	svc := fixture.New(store, logger, opts)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Mock != nil && !cfg.Mock.Enabled {
				logger.Warn("Mock backend disabled, fixtures are generated on first sign-in")

				return nil
			}

			return svc.Initialize(ctx)
		},
	})

	return svc
}

func newLatency(cfg *config.Config) *interceptor.Latency {
	if cfg.Mock == nil {
		return interceptor.NewLatency(nil)
	}

	return interceptor.NewLatency(cfg.Mock.Latency)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newIDTokenVerifier,
			newQRCodeService,
		),
	)
}

// newIDTokenVerifier returns nil unless Google ID tokens must be checked.
func newIDTokenVerifier(cfg *config.Config, logger *slog.Logger) service.IDTokenVerifier {
	if cfg.GoogleOAuth == nil || !cfg.GoogleOAuth.VerifyIDTokens {
		return nil
	}

	return google.NewVerifier(cfg, logger)
}

func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.Share == nil {
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.Share.QRSize, cfg.Share.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewProfileService,
			impl.NewDomainService,
			impl.NewEventService,
			impl.NewShareService,
			impl.NewFixtureService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewDomainHandler,
			handler.NewEventHandler,
			handler.NewCatalogHandler,
			handler.NewDevHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
