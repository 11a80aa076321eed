package entity

import "time"

// DomainProfile is one linked gaming account of a user, with its headline stats.
// CurrentRating and PeakRating are either both set or both nil.
type DomainProfile struct {
	ID               string    `json:"id"`               // e.g. "mock-chess".
	UserID           string    `json:"userId"`           // Owning User.ID.
	DomainKey        string    `json:"domainKey"`        // DomainKind of the profile, e.g. "chess".
	DomainName       string    `json:"domainName"`       // Display name, e.g. "Chess".
	DomainIcon       string    `json:"domainIcon"`       // Icon URL.
	PrimaryPlatform  string    `json:"primaryPlatform"`  // e.g. "Chess.com", "Riot Games".
	PlatformUsername string    `json:"platformUsername"` // Username on PrimaryPlatform.
	PeakRating       *int      `json:"peakRating"`
	CurrentRating    *int      `json:"currentRating"`
	GamesPlayed      *int      `json:"gamesPlayed"`
	RankTier         *string   `json:"rankTier"`
	ShareSlug        string    `json:"shareSlug"` // Slug of the public share URL.
	LastUpdated      time.Time `json:"lastUpdated"`
}

// Kind returns the DomainKind of the profile.
func (p *DomainProfile) Kind() DomainKind {
	return DomainKind(p.DomainKey)
}

// Clone returns a deep copy of the profile.
func (p *DomainProfile) Clone() *DomainProfile {
	if p == nil {
		return nil
	}

	clone := *p
	clone.PeakRating = cloneInt(p.PeakRating)
	clone.CurrentRating = cloneInt(p.CurrentRating)
	clone.GamesPlayed = cloneInt(p.GamesPlayed)
	if p.RankTier != nil {
		tier := *p.RankTier
		clone.RankTier = &tier
	}

	return &clone
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v

	return &n
}
