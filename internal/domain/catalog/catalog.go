// Package catalog describes the gaming domains AliasCore knows how to display.
package catalog

import (
	"slices"
	"strings"
	"sync"

	"aliascore/internal/domain/entity"

	"aliascore/internal/errors"
)

// ErrUnknownDomain is returned by Registry.Get for keys that were never registered.
var ErrUnknownDomain = errors.New("unknown domain")

// ColorScheme is the card palette of a domain. All primaries pass WCAG AA
// against the TextContrast color.
type ColorScheme struct {
	Primary      string `json:"primary"`
	Border       string `json:"border"`
	Accent       string `json:"accent,omitempty"`
	TextContrast string `json:"textContrast"` // "light" or "dark"
}

// Definition holds the static facts about one domain.
type Definition struct {
	Key      string      `json:"key"`
	Name     string      `json:"name"`
	Platform string      `json:"platform"`
	IconURL  string      `json:"iconUrl"`
	Colors   ColorScheme `json:"colors"`
}

// DefaultColors is used for domains without a dedicated scheme.
var DefaultColors = ColorScheme{
	Primary:      "#6C63FF",
	Border:       "#5248CC",
	Accent:       "#8E87FF",
	TextContrast: "light",
}

// Registry is a concurrency-safe set of domain definitions keyed by domain key.
type Registry struct {
	mu      sync.RWMutex
	domains map[string]Definition
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		domains: make(map[string]Definition),
	}
}

// Default returns a registry holding the built-in domains.
func Default() *Registry {
	r := NewRegistry()
	for _, def := range builtin {
		r.Register(def)
	}

	return r
}

// Register adds or replaces a definition. Keys are case-insensitive.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(def.Key)
	def.Key = key
	if _, exists := r.domains[key]; !exists {
		r.order = append(r.order, key)
	}
	r.domains[key] = def
}

// Get retrieves a definition by domain key.
func (r *Registry) Get(key string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.domains[strings.ToLower(key)]
	if !ok {
		return Definition{}, errors.Wrapf(ErrUnknownDomain, "domain %q", key)
	}

	return def, nil
}

// Colors returns the palette of key, falling back to DefaultColors.
func (r *Registry) Colors(key string) ColorScheme {
	def, err := r.Get(key)
	if err != nil {
		return DefaultColors
	}

	return def.Colors
}

// List returns every definition in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		defs = append(defs, r.domains[key])
	}

	return defs
}

// Keys returns every registered key in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

var builtin = []Definition{
	{
		Key:      entity.DomainChess.String(),
		Name:     "Chess",
		Platform: "Chess.com",
		IconURL:  "https://cdn.aliascore.app/icons/chess.png",
		Colors:   ColorScheme{Primary: "#2C5E1A", Border: "#1F4312", Accent: "#4A9D2A", TextContrast: "light"},
	},
	{
		Key:      entity.DomainValorant.String(),
		Name:     "Valorant",
		Platform: "Riot Games",
		IconURL:  "https://cdn.aliascore.app/icons/valorant.png",
		Colors:   ColorScheme{Primary: "#FA4454", Border: "#C91F30", Accent: "#FF6B7A", TextContrast: "light"},
	},
	{
		Key:      entity.DomainSpeedrunning.String(),
		Name:     "Speedrunning",
		Platform: "Speedrun.com",
		IconURL:  "https://cdn.aliascore.app/icons/speedrunning.png",
		Colors:   ColorScheme{Primary: "#00A3E0", Border: "#007DA8", Accent: "#33B8E8", TextContrast: "dark"},
	},
	{
		Key:      "league",
		Name:     "League of Legends",
		Platform: "Riot Games",
		IconURL:  "https://cdn.aliascore.app/icons/league.png",
		Colors:   ColorScheme{Primary: "#C89B3C", Border: "#9A7A2F", Accent: "#E6C76F", TextContrast: "dark"},
	},
	{
		Key:      "cs",
		Name:     "Counter-Strike",
		Platform: "Steam",
		IconURL:  "https://cdn.aliascore.app/icons/cs.png",
		Colors:   ColorScheme{Primary: "#F5B800", Border: "#C29000", Accent: "#FFC933", TextContrast: "dark"},
	},
}
