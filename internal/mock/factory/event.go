package factory

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"aliascore/internal/domain/entity"
	"aliascore/internal/mock/seededrand"
	"aliascore/internal/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// BaseLatitude and BaseLongitude center generated events on San Francisco.
	BaseLatitude  = 37.7749
	BaseLongitude = -122.4194
	// EventRadiusKm bounds the haversine distance of every event from the base point.
	EventRadiusKm = 30.0

	DefaultEventsPerDomain = 8
	MinEventsPerDomain     = 5
	MaxEventsPerDomain     = 10

	firstEventOffsetDays = 7
	eventSpacingDays     = 10
	earliestHour         = 9
	latestHour           = 20
	coordinateDecimals   = 6
	eventOrganizer       = "Gaming Community Org"
)

// BasePoint is the base location as an orb point.
var BasePoint = orb.Point{BaseLongitude, BaseLatitude}

var (
	venues = []string{
		"Moscone Center",
		"SF Gaming Lounge",
		"Berkeley Esports Arena",
		"Oakland Convention Center",
		"San Jose Tech Hub",
	}

	eventNames = map[entity.DomainKind][]string{
		entity.DomainChess: {
			"Bay Area Chess Championship",
			"Blitz Chess Tournament",
			"SF Open Chess League",
			"Grand Prix Qualifier",
			"Rapid Chess Masters",
		},
		entity.DomainValorant: {
			"Valorant Pro Series",
			"Agent Showdown",
			"Bay Area Clash",
			"Tactical Shooters Cup",
			"Regional Qualifiers",
		},
		entity.DomainSpeedrunning: {
			"GDQ Satellite Event",
			"Any% Speedrun Marathon",
			"Glitchless Championship",
			"Speedrunning Showcase",
			"World Record Attempt",
		},
	}

	genericEventNames = []string{"Gaming Tournament", "Competitive Event", "Community Meetup"}
)

// ClampEventCount bounds count to [MinEventsPerDomain, MaxEventsPerDomain]. Zero or less selects the default.
func ClampEventCount(count int) int {
	if count <= 0 {
		return DefaultEventsPerDomain
	}

	return min(max(count, MinEventsPerDomain), MaxEventsPerDomain)
}

// EventFactory builds upcoming events around the base point.
type EventFactory struct {
	rng   *seededrand.Rand
	clock Clock
}

// NewEventFactory creates an EventFactory. A nil rng uses the default seed and a nil clock uses time.Now.
func NewEventFactory(rng *seededrand.Rand, clock Clock) *EventFactory {
	rng, clock = resolve(rng, clock)

	return &EventFactory{rng: rng, clock: clock}
}

// EventsForDomain builds ClampEventCount(count) events for the profile domainID, sorted by date.
//
// Draws per event, in index order: Pick(name), Pick(venue), NextFloat(0, 2π) bearing,
// NextFloat(0, EventRadiusKm) distance, NextInt(9, 20) hour.
func (f *EventFactory) EventsForDomain(domainID string, count int) []*entity.Event {
	count = ClampEventCount(count)
	names := namesFor(domainID)
	today := f.clock()

	events := make([]*entity.Event, 0, count)
	for i := range count {
		name := seededrand.Pick(f.rng, names)
		venue := seededrand.Pick(f.rng, venues)
		lat, lon := f.coordinates()
		hour := f.rng.NextInt(earliestHour, latestHour)

		date := time.Date(
			today.Year(), today.Month(), today.Day()+firstEventOffsetDays+eventSpacingDays*i,
			hour, 0, 0, 0, today.Location(),
		).UTC()

		events = append(events, &entity.Event{
			ID:            fmt.Sprintf("mock-event-%s-%d", domainID, i),
			DomainKey:     domainID,
			Name:          fmt.Sprintf("%s #%d", name, i+1),
			Description:   fmt.Sprintf("Join us for %s at %s. All skill levels welcome!", name, venue),
			Venue:         venue,
			DateTime:      date,
			Latitude:      lat,
			Longitude:     lon,
			Link:          ptr(fmt.Sprintf("https://example.com/events/%s/%d", domainID, i)),
			OrganizerName: ptr(eventOrganizer),
		})
	}

	slices.SortStableFunc(events, func(a, b *entity.Event) int {
		return a.DateTime.Compare(b.DateTime)
	})

	return events
}

// coordinates returns a point at a random bearing and distance from the base point.
func (f *EventFactory) coordinates() (float64, float64) {
	bearing := f.rng.NextFloat(0, 2*math.Pi)
	distanceKm := f.rng.NextFloat(0, EventRadiusKm)

	p := geo.PointAtBearingAndDistance(BasePoint, bearing*180/math.Pi, distanceKm*1000)

	return util.RoundTo(p.Lat(), coordinateDecimals), util.RoundTo(p.Lon(), coordinateDecimals)
}

func namesFor(domainID string) []string {
	kind := entity.DomainKind(strings.TrimPrefix(domainID, "mock-"))
	if names, ok := eventNames[kind]; ok {
		return names
	}

	return genericEventNames
}
