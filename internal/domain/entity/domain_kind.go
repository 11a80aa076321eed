package entity

// DomainKind identifies a supported gaming domain.
type DomainKind string

const (
	// DomainChess is online chess (Chess.com).
	DomainChess DomainKind = "chess"
	// DomainValorant is Riot's tactical shooter.
	DomainValorant DomainKind = "valorant"
	// DomainSpeedrunning is speedrun leaderboards (Speedrun.com).
	DomainSpeedrunning DomainKind = "speedrunning"
)

// DomainKinds lists the closed set of domains in catalog order.
var DomainKinds = []DomainKind{DomainChess, DomainValorant, DomainSpeedrunning}

// String returns the string representation of the DomainKind.
func (k DomainKind) String() string {
	return string(k)
}

// IsValid checks if the DomainKind is one of the supported domains.
func (k DomainKind) IsValid() bool {
	switch k {
	case DomainChess, DomainValorant, DomainSpeedrunning:
		return true
	default:
		return false
	}
}

// HasRatings reports whether profiles of this domain carry numeric ratings.
func (k DomainKind) HasRatings() bool {
	return k != DomainSpeedrunning
}
