// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"
)

// MaxDomainsPerUser caps how many domain profiles one user can link.
const MaxDomainsPerUser = 10

// User is an authenticated person and the owner of their domain profiles.
// Records are replaced, never edited in place: the With* helpers return copies.
type User struct {
	ID          string    `json:"id"`          // Stable identifier, e.g. "mock-user-12345".
	Email       string    `json:"email"`       // Primary contact email from the identity provider.
	DisplayName string    `json:"displayName"` // 3-30 chars of letters, digits, spaces and . - '
	AvatarURL   *string   `json:"avatarUrl"`   // Nil until an avatar is uploaded.
	Domains     []string  `json:"domains"`     // Linked DomainProfile ids, at most MaxDomainsPerUser.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.Domains = slices.Clone(u.Domains)
	if clone.Domains == nil {
		clone.Domains = []string{}
	}
	if u.AvatarURL != nil {
		avatar := *u.AvatarURL
		clone.AvatarURL = &avatar
	}

	return &clone
}

// WithDomains returns a copy linked to domainIDs and stamped with updatedAt.
func (u *User) WithDomains(domainIDs []string, updatedAt time.Time) *User {
	clone := u.Clone()
	clone.Domains = slices.Clone(domainIDs)
	if clone.Domains == nil {
		clone.Domains = []string{}
	}
	clone.UpdatedAt = updatedAt

	return clone
}

// WithDisplayName returns a copy carrying name and stamped with updatedAt.
func (u *User) WithDisplayName(name string, updatedAt time.Time) *User {
	clone := u.Clone()
	clone.DisplayName = name
	clone.UpdatedAt = updatedAt

	return clone
}

// WithAvatarURL returns a copy with the avatar replaced. An empty url clears it.
func (u *User) WithAvatarURL(url string, updatedAt time.Time) *User {
	clone := u.Clone()
	clone.AvatarURL = nil
	if url != "" {
		clone.AvatarURL = &url
	}
	clone.UpdatedAt = updatedAt

	return clone
}
