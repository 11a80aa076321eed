package factory

import (
	"strings"

	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/entity"
	"aliascore/internal/mock/seededrand"

	"aliascore/internal/errors"
)

// profileStats is one row of the fixed stat table.
type profileStats struct {
	username      string
	currentRating *int
	peakRating    *int
	gamesPlayed   int
	rankTier      string
}

// Speedrunning has no rating system; gamesPlayed counts run categories.
var statTable = map[entity.DomainKind]profileStats{
	entity.DomainChess: {
		username:      "ChessMaster2000",
		currentRating: ptr(1720),
		peakRating:    ptr(1850),
		gamesPlayed:   4205,
		rankTier:      "Expert",
	},
	entity.DomainValorant: {
		username:      "AgentPhoenix",
		currentRating: ptr(1950),
		peakRating:    ptr(2100),
		gamesPlayed:   892,
		rankTier:      "Diamond 1",
	},
	entity.DomainSpeedrunning: {
		username:    "FastRunner99",
		gamesPlayed: 156,
		rankTier:    "World Record",
	},
}

// DefaultProfileKinds are the domains linked to a freshly generated user.
var DefaultProfileKinds = []entity.DomainKind{entity.DomainChess, entity.DomainValorant}

// ProfileID returns the fixture id of a domain kind, e.g. "mock-chess".
func ProfileID(kind entity.DomainKind) string {
	return "mock-" + kind.String()
}

// DomainProfileFactory builds mock domain profiles from the stat table.
type DomainProfileFactory struct {
	rng     *seededrand.Rand
	clock   Clock
	catalog *catalog.Registry
}

// NewDomainProfileFactory creates a DomainProfileFactory. A nil registry uses catalog.Default.
func NewDomainProfileFactory(rng *seededrand.Rand, clock Clock, registry *catalog.Registry) *DomainProfileFactory {
	rng, clock = resolve(rng, clock)
	if registry == nil {
		registry = catalog.Default()
	}

	return &DomainProfileFactory{rng: rng, clock: clock, catalog: registry}
}

// DefaultProfiles returns the chess and valorant profiles of userID. It makes no generator draws.
func (f *DomainProfileFactory) DefaultProfiles(userID string) []*entity.DomainProfile {
	profiles := make([]*entity.DomainProfile, 0, len(DefaultProfileKinds))
	for _, kind := range DefaultProfileKinds {
		profiles = append(profiles, f.build(userID, kind))
	}

	return profiles
}

// Profile returns the fixed profile of kind for userID. It makes no generator draws.
func (f *DomainProfileFactory) Profile(userID string, kind entity.DomainKind) (*entity.DomainProfile, error) {
	if !kind.IsValid() {
		return nil, errors.Errorf("unsupported domain kind %q", kind)
	}

	return f.build(userID, kind), nil
}

// RandomProfile returns the profile of a random domain kind.
// Draws: Pick(kind) over entity.DomainKinds.
func (f *DomainProfileFactory) RandomProfile(userID string) *entity.DomainProfile {
	kind := seededrand.Pick(f.rng, entity.DomainKinds)

	return f.build(userID, kind)
}

// Profiles returns the first min(count, 3) kinds in catalog order. It makes no generator draws.
func (f *DomainProfileFactory) Profiles(userID string, count int) []*entity.DomainProfile {
	n := min(max(count, 0), len(entity.DomainKinds))

	profiles := make([]*entity.DomainProfile, 0, n)
	for _, kind := range entity.DomainKinds[:n] {
		profiles = append(profiles, f.build(userID, kind))
	}

	return profiles
}

func (f *DomainProfileFactory) build(userID string, kind entity.DomainKind) *entity.DomainProfile {
	stats := statTable[kind]
	def, err := f.catalog.Get(kind.String())
	if err != nil {
		def = catalog.Definition{Key: kind.String(), Name: kind.String()}
	}

	profile := &entity.DomainProfile{
		ID:               ProfileID(kind),
		UserID:           userID,
		DomainKey:        kind.String(),
		DomainName:       def.Name,
		DomainIcon:       def.IconURL,
		PrimaryPlatform:  def.Platform,
		PlatformUsername: stats.username,
		GamesPlayed:      ptr(stats.gamesPlayed),
		RankTier:         ptr(stats.rankTier),
		ShareSlug:        kind.String() + "-" + strings.ToLower(stats.username) + "-mock",
		LastUpdated:      timestamp(f.clock),
	}
	if kind.HasRatings() {
		profile.CurrentRating = ptr(*stats.currentRating)
		profile.PeakRating = ptr(*stats.peakRating)
	}

	return profile
}
