package factory

import (
	"fmt"
	"strings"

	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/mock/seededrand"

	"aliascore/internal/errors"
)

const (
	DefaultUserID          = "mock-user-12345"
	DefaultUserEmail       = "testuser@example.com"
	DefaultUserDisplayName = "Test User"
)

var (
	firstNames = []string{"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey"}
	lastNames  = []string{"Chen", "Smith", "Johnson", "Garcia", "Lee", "Wilson"}
)

// UserOptions overrides the defaults of a generated user. Empty fields keep the default.
type UserOptions struct {
	ID          string
	Email       string
	DisplayName string
	Domains     []string
}

// UserFactory builds mock users.
type UserFactory struct {
	rng   *seededrand.Rand
	clock Clock
}

// NewUserFactory creates a UserFactory. A nil rng uses the default seed and a nil clock uses time.Now.
func NewUserFactory(rng *seededrand.Rand, clock Clock) *UserFactory {
	rng, clock = resolve(rng, clock)

	return &UserFactory{rng: rng, clock: clock}
}

// Generate builds a user from opts. It makes no generator draws.
func (f *UserFactory) Generate(opts UserOptions) *entity.User {
	now := timestamp(f.clock)

	user := &entity.User{
		ID:          DefaultUserID,
		Email:       DefaultUserEmail,
		DisplayName: DefaultUserDisplayName,
		AvatarURL:   nil,
		Domains:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if opts.ID != "" {
		user.ID = opts.ID
	}
	if opts.Email != "" {
		user.Email = opts.Email
	}
	if opts.DisplayName != "" {
		user.DisplayName = opts.DisplayName
	}
	if opts.Domains != nil {
		user.Domains = append([]string{}, opts.Domains...)
	}

	return user
}

// GenerateRandom builds a user with a random name.
// Draws: Pick(first name), Pick(last name), NextInt(10000, 99999) for the id suffix.
func (f *UserFactory) GenerateRandom() *entity.User {
	first := seededrand.Pick(f.rng, firstNames)
	last := seededrand.Pick(f.rng, lastNames)
	suffix := f.rng.NextInt(10000, 99999)

	return f.Generate(UserOptions{
		ID:          fmt.Sprintf("mock-user-%d", suffix),
		Email:       fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
		DisplayName: first + " " + last,
	})
}

// UpdateDomains returns a copy of user linked to domainIDs. It makes no generator draws.
func (f *UserFactory) UpdateDomains(user *entity.User, domainIDs []string) (*entity.User, error) {
	if len(domainIDs) > entity.MaxDomainsPerUser {
		return nil, errors.Wrapf(domainerrors.ErrDomainLimitExceeded, "got %d domains", len(domainIDs))
	}

	return user.WithDomains(domainIDs, timestamp(f.clock)), nil
}
