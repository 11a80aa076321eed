package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"aliascore/config"
	"aliascore/internal/domain/catalog"
	"aliascore/internal/infra/auth"
	"aliascore/internal/infra/kvstore"
	"aliascore/internal/infra/qrcode"
	"aliascore/internal/mock/factory"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/mock/interceptor"

	"github.com/stretchr/testify/require"
)

const (
	testUserID   = factory.DefaultUserID
	testDomainID = "mock-chess"
)

// usecaseFixtures holds the real mock backend shared by the usecase tests.
type usecaseFixtures struct {
	cfg      *config.Config
	api      *interceptor.Interceptor
	fixtures *fixture.Service
	logger   *slog.Logger
}

func createTestBackend(t *testing.T) usecaseFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC) }
	fixtures := fixture.New(kvstore.NewMemory(), logger, fixture.Options{Clock: clock})

	cfg := &config.Config{
		Share: &config.ShareConfig{BaseURL: "https://aliascore.test/p/", QRSize: 128},
	}
	cfg.SecretKey.Access = "usecase-test-secret"
	cfg.SecretKey.TTL = time.Hour
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return usecaseFixtures{
		cfg:      cfg,
		api:      interceptor.New(fixtures, tokens, nil, interceptor.NoLatency(), logger),
		fixtures: fixtures,
		logger:   logger,
	}
}

func (f usecaseFixtures) initialize(t *testing.T) {
	t.Helper()

	require.NoError(t, f.fixtures.Initialize(context.Background()))
}

func (f usecaseFixtures) share() *shareService {
	svc := NewShareService(f.api, qrcode.NewQRCodeService(f.cfg.Share.QRSize, "medium"), f.cfg, f.logger)

	return svc.(*shareService) //nolint:forcetypeassert
}

func (f usecaseFixtures) domains() *domainService {
	svc := NewDomainService(f.api, catalog.Default(), f.logger)

	return svc.(*domainService) //nolint:forcetypeassert
}
