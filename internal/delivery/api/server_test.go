package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aliascore/config"
	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/router"
	"aliascore/internal/delivery/api/router/handler"
	deliverycontext "aliascore/internal/delivery/context"
	"aliascore/internal/domain/catalog"
	"aliascore/internal/infra/auth"
	"aliascore/internal/infra/kvstore"
	"aliascore/internal/infra/qrcode"
	"aliascore/internal/mock/factory"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	echo     *echo.Echo
	fixtures *fixture.Service
}

func newTestServer(t *testing.T, devRoutes bool) testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Mock:  &config.MockConfig{Enabled: true, DevRoutes: devRoutes},
		Share: &config.ShareConfig{BaseURL: "https://aliascore.test/p", QRSize: 128},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = "api-test-secret"
	cfg.SecretKey.TTL = time.Hour

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	fixtures := fixture.New(kvstore.NewMemory(), logger, fixture.Options{})
	api := interceptor.New(fixtures, tokens, nil, interceptor.NoLatency(), logger)
	registry := catalog.Default()

	sessionUC := impl.NewSessionService(api, logger)
	domainUC := impl.NewDomainService(api, registry, logger)
	eventUC := impl.NewEventService(api, logger)
	shareUC := impl.NewShareService(api, qrcode.NewQRCodeService(128, "M"), cfg, logger)
	fixtureUC := impl.NewFixtureService(fixtures, logger)

	params := router.RouterParams{
		HealthHandler:  handler.NewHealthHandler(fixtureUC),
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{SessionUC: sessionUC, Logger: logger}),
		ProfileHandler: handler.NewProfileHandler(impl.NewProfileService(api, logger)),
		DomainHandler: handler.NewDomainHandler(handler.DomainHandlerParams{
			DomainUC: domainUC,
			EventUC:  eventUC,
			ShareUC:  shareUC,
			Logger:   logger,
		}),
		EventHandler:   handler.NewEventHandler(eventUC),
		CatalogHandler: handler.NewCatalogHandler(domainUC),
		DevHandler:     handler.NewDevHandler(fixtureUC),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
		Config:         cfg,
	}

	return testServer{echo: newEcho(cfg, logger, params), fixtures: fixtures}
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func (s testServer) signIn(t *testing.T) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "google-id-token"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &out)
	require.NotEmpty(t, out.Token)

	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(decode(t, rec).Data, v))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	decodeData(t, rec, &out)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "uninitialized", out["fixtures"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "req-123", decode(t, rec).Meta.RequestID)
}

func TestGoogleSignIn(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "google-id-token"})

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Token     string `json:"token"`
		IsNewUser bool   `json:"isNewUser"`
		User      struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeData(t, rec, &out)
	assert.NotEmpty(t, out.Token)
	assert.False(t, out.IsNewUser)
	assert.Equal(t, factory.DefaultUserID, out.User.ID)
	assert.Equal(t, fixture.StateReady, srv.fixtures.State())
}

func TestGoogleSignIn_MissingToken(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodPost, "/api/auth/google", "", map[string]string{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "IDToken is required")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t, false)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "me without header", method: http.MethodGet, path: "/api/auth/me"},
		{name: "domains without header", method: http.MethodGet, path: "/api/domains"},
		{name: "events with garbage token", method: http.MethodGet, path: "/api/events?latitude=1&longitude=1", token: "not-a-jwt"},
		{name: "profile update without header", method: http.MethodPut, path: "/api/profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.token, nil)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
			assert.Empty(t, env.Error.Details)
		})
	}
}

func TestMe(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeData(t, rec, &out)
	assert.Equal(t, factory.DefaultUserEmail, out.User.Email)
}

func TestDomainsAndEvents(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodGet, "/api/domains", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var domains struct {
		Domains []struct {
			ID      string `json:"id"`
			Display struct {
				CurrentRating string `json:"currentRating"`
			} `json:"display"`
			Colors struct {
				Primary string `json:"primary"`
			} `json:"colors"`
		} `json:"domains"`
	}
	decodeData(t, rec, &domains)
	require.Len(t, domains.Domains, 2)
	assert.Equal(t, "mock-chess", domains.Domains[0].ID)
	assert.NotEmpty(t, domains.Domains[0].Display.CurrentRating)
	assert.NotEmpty(t, domains.Domains[0].Colors.Primary)

	rec = srv.do(t, http.MethodGet, "/api/domains/mock-chess/events", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events struct {
		Events []map[string]any `json:"events"`
		Count  int              `json:"count"`
	}
	decodeData(t, rec, &events)
	assert.Equal(t, factory.DefaultEventsPerDomain, events.Count)
	assert.Len(t, events.Events, events.Count)

	rec = srv.do(t, http.MethodGet, "/api/domains/mock-unknown/events", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DOMAIN_NOT_FOUND", decode(t, rec).Error.Code)

	rec = srv.do(t, http.MethodGet, "/api/domains/mock-unknown", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DOMAIN_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestNearbyEvents(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodGet, "/api/events?latitude=37.7749&longitude=-122.4194&limit=4", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Events []struct {
			Name          string  `json:"name"`
			DistanceMiles float64 `json:"distanceMiles"`
			Distance      string  `json:"distance"`
		} `json:"events"`
		Count int `json:"count"`
	}
	decodeData(t, rec, &out)
	assert.Equal(t, 4, out.Count)
	for _, e := range out.Events {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Distance)
	}
}

func TestNearbyEvents_BadQuery(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodGet, "/api/events?latitude=abc", token, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestUpdateProfile(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodPut, "/api/profile", token, map[string]string{"displayName": "Grand Master"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPut, "/api/profile", token, map[string]string{"displayName": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "Display name must be at least 3 characters", env.Error.Details)
}

func TestShare(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodGet, "/api/domains/mock-chess/share", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Type     string `json:"type"`
		ShareURL string `json:"shareUrl"`
	}
	decodeData(t, rec, &payload)
	assert.Equal(t, "domain-profile", payload.Type)
	assert.True(t, strings.HasPrefix(payload.ShareURL, "https://aliascore.test/p/chess-"))

	rec = srv.do(t, http.MethodGet, "/api/domains/mock-chess/share/qr", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodGet, "/api/catalog", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Domains []struct {
			Key string `json:"key"`
		} `json:"domains"`
	}
	decodeData(t, rec, &out)
	assert.NotEmpty(t, out.Domains)
}

func TestSignOut(t *testing.T) {
	srv := newTestServer(t, false)
	token := srv.signIn(t)

	rec := srv.do(t, http.MethodPost, "/api/auth/signout", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.StateUninitialized, srv.fixtures.State())

	// The token is still valid but the fixtures are gone.
	rec = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "FIXTURES_NOT_INITIALIZED", decode(t, rec).Error.Code)
}

func TestDevRoutes(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := newTestServer(t, false)

		rec := srv.do(t, http.MethodPost, "/api/dev/fixtures/reset", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		srv := newTestServer(t, true)

		rec := srv.do(t, http.MethodPost, "/api/dev/fixtures/reset", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var status struct {
			State      string `json:"state"`
			EventCount int    `json:"eventCount"`
		}
		decodeData(t, rec, &status)
		assert.Equal(t, "ready", status.State)
		assert.Equal(t, 2*factory.DefaultEventsPerDomain, status.EventCount)

		rec = srv.do(t, http.MethodDelete, "/api/dev/fixtures", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, fixture.StateUninitialized, srv.fixtures.State())
	})
}
