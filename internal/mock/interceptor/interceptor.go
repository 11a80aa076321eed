// Package interceptor serves mock fixtures through the same call shapes as the
// real AliasCore API, including simulated network latency.
package interceptor

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/domain/service"
	"aliascore/internal/errors"
	"aliascore/internal/mock/factory"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/validation"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DefaultNearbyRadiusKm is the search radius when the caller passes none.
const DefaultNearbyRadiusKm = factory.EventRadiusKm

// AuthResult is the response of a Google sign-in.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *entity.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

// ProfileUpdate carries the user fields a profile update may change. Nil fields are left alone.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
}

// NearbyEvent is an event with its distance from the search point.
type NearbyEvent struct {
	*entity.Event
	DistanceKm float64 `json:"distanceKm"`
}

// Interceptor answers API calls from the fixture service.
type Interceptor struct {
	fixtures *fixture.Service
	tokens   service.TokenService
	verifier service.IDTokenVerifier
	latency  *Latency
	logger   *slog.Logger
	clock    func() time.Time
}

// New creates an Interceptor. A nil verifier accepts any non-empty ID token;
// a nil latency never waits.
func New(
	fixtures *fixture.Service,
	tokens service.TokenService,
	verifier service.IDTokenVerifier,
	latency *Latency,
	logger *slog.Logger,
) *Interceptor {
	if latency == nil {
		latency = NoLatency()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Interceptor{
		fixtures: fixtures,
		tokens:   tokens,
		verifier: verifier,
		latency:  latency,
		logger:   logger.With(slog.String("component", "mock_api")),
		clock:    time.Now,
	}
}

// AuthenticateWithGoogle initializes the fixtures and signs the fixture user in.
// isNewUser is always false, so clients skip onboarding.
func (i *Interceptor) AuthenticateWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	i.logger.InfoContext(ctx, "Authenticating with Google")

	if strings.TrimSpace(idToken) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("idToken is required")
	}

	if err := i.fixtures.Initialize(ctx); err != nil {
		return nil, err
	}

	if err := i.latency.Wait(ctx, MethodAuthenticateWithGoogle); err != nil {
		return nil, err
	}

	if i.verifier != nil {
		identity, err := i.verifier.VerifyIDToken(ctx, idToken)
		if err != nil {
			return nil, err
		}
		i.logger.DebugContext(ctx, "Google identity accepted", slog.String("subject", identity.ID))
	}

	user, err := i.fixtures.User()
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := i.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	i.logger.InfoContext(ctx, "Authentication successful", slog.String("userId", user.ID), slog.String("email", user.Email))

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: false,
	}, nil
}

// GetUserProfile returns the fixture user when userID matches it.
func (i *Interceptor) GetUserProfile(ctx context.Context, userID string) (*entity.User, error) {
	i.logger.InfoContext(ctx, "Fetching user profile", slog.String("userId", userID))

	if err := i.latency.Wait(ctx, MethodGetUserProfile); err != nil {
		return nil, err
	}

	return i.userByID(userID)
}

// GetUserDomains returns the profiles owned by userID. Other ids yield an empty list.
func (i *Interceptor) GetUserDomains(ctx context.Context, userID string) ([]*entity.DomainProfile, error) {
	i.logger.InfoContext(ctx, "Fetching user domains", slog.String("userId", userID))

	if err := i.latency.Wait(ctx, MethodGetUserDomains); err != nil {
		return nil, err
	}

	domains, err := i.fixtures.Domains()
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(domains, func(d *entity.DomainProfile) bool {
		return d.UserID != userID
	}), nil
}

// GetDomainProfile returns one profile by id.
func (i *Interceptor) GetDomainProfile(ctx context.Context, domainID string) (*entity.DomainProfile, error) {
	i.logger.InfoContext(ctx, "Fetching domain profile", slog.String("domainId", domainID))

	if err := i.latency.Wait(ctx, MethodGetDomainProfile); err != nil {
		return nil, err
	}

	return i.fixtures.Domain(domainID)
}

// GetEventsForDomain returns the upcoming events of a profile, sorted by date.
func (i *Interceptor) GetEventsForDomain(ctx context.Context, domainID string) ([]*entity.Event, error) {
	i.logger.InfoContext(ctx, "Fetching events for domain", slog.String("domainId", domainID))

	if err := i.latency.Wait(ctx, MethodGetEventsForDomain); err != nil {
		return nil, err
	}

	if _, err := i.fixtures.Domain(domainID); err != nil {
		return nil, err
	}

	return i.fixtures.Events(domainID)
}

// GetEventsNearLocation returns events within radiusKm of (latitude, longitude),
// nearest first. A radius of zero or less selects DefaultNearbyRadiusKm.
func (i *Interceptor) GetEventsNearLocation(ctx context.Context, latitude, longitude, radiusKm float64) ([]NearbyEvent, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	i.logger.InfoContext(ctx, "Fetching events near location",
		slog.Float64("latitude", latitude),
		slog.Float64("longitude", longitude),
		slog.Float64("radiusKm", radiusKm),
	)

	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	if err := i.latency.Wait(ctx, MethodGetEventsNearLocation); err != nil {
		return nil, err
	}

	events, err := i.fixtures.AllEvents()
	if err != nil {
		return nil, err
	}

	origin := orb.Point{longitude, latitude}
	nearby := make([]NearbyEvent, 0, len(events))
	for _, ev := range events {
		km := geo.DistanceHaversine(origin, ev.Point()) / 1000
		if km <= radiusKm {
			nearby = append(nearby, NearbyEvent{Event: ev, DistanceKm: km})
		}
	}

	slices.SortStableFunc(nearby, func(a, b NearbyEvent) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return a.DateTime.Compare(b.DateTime)
		}
	})

	return nearby, nil
}

// UpdateUserProfile applies update to the fixture user and persists the result.
func (i *Interceptor) UpdateUserProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.User, error) {
	i.logger.InfoContext(ctx, "Updating user profile", slog.String("userId", userID))

	if err := i.latency.Wait(ctx, MethodUpdateUserProfile); err != nil {
		return nil, err
	}

	user, err := i.userByID(userID)
	if err != nil {
		return nil, err
	}

	now := i.clock().UTC().Truncate(time.Millisecond)
	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if err := validation.ValidateDisplayName(name); err != nil {
			return nil, err
		}
		user = user.WithDisplayName(name, now)
	}
	if update.AvatarURL != nil {
		avatar := strings.TrimSpace(*update.AvatarURL)
		if avatar != "" {
			if err := validation.ValidateURL(avatar); err != nil {
				return nil, err
			}
		}
		user = user.WithAvatarURL(avatar, now)
	}

	if err := i.fixtures.ReplaceUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignOut drops the fixtures; the next sign-in loads or regenerates them.
func (i *Interceptor) SignOut(ctx context.Context) error {
	i.logger.InfoContext(ctx, "Signing out")

	if err := i.latency.Wait(ctx, MethodSignOut); err != nil {
		return err
	}

	i.fixtures.Clear(ctx)

	return nil
}

func (i *Interceptor) userByID(userID string) (*entity.User, error) {
	user, err := i.fixtures.User()
	if err != nil {
		return nil, err
	}

	if user.ID != userID {
		return nil, errors.Wrapf(domainerrors.ErrUserNotFound, "user %q", userID)
	}

	return user, nil
}
