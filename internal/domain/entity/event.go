package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// Event is a local gaming gathering tied to one domain profile.
type Event struct {
	ID            string    `json:"id"`
	DomainKey     string    `json:"domainKey"` // Owning DomainProfile.ID, e.g. "mock-chess".
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Venue         string    `json:"venue"`
	DateTime      time.Time `json:"dateTime"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Link          *string   `json:"link"`
	OrganizerName *string   `json:"organizerName"`
}

// Point returns the event location as an orb point (lon, lat).
func (e *Event) Point() orb.Point {
	return orb.Point{e.Longitude, e.Latitude}
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}

	clone := *e
	if e.Link != nil {
		link := *e.Link
		clone.Link = &link
	}
	if e.OrganizerName != nil {
		organizer := *e.OrganizerName
		clone.OrganizerName = &organizer
	}

	return &clone
}
