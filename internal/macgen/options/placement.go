package options

import (
	"strconv"
	"strings"
)

// PlacementKind tells which representation a Placement holds.
type PlacementKind int

const (
	// PlacementVector is an explicit (x, y, z) triple.
	PlacementVector PlacementKind = iota
	// PlacementSymbol is a named distribution understood by the kinematics helper, e.g. "random".
	PlacementSymbol
)

func (k PlacementKind) String() string {
	switch k {
	case PlacementVector:
		return "vector"
	case PlacementSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Placement is the value of a particle gun position or direction: either a vector or a symbolic name.
// Vector components are kept as given so they reach the macro file unchanged.
type Placement struct {
	Kind   PlacementKind
	Vector []string
	Symbol string
}

// ParsePlacement interprets a single token as a symbol and anything with commas as a vector.
// The vector length and the symbol vocabulary are checked during validation.
func ParsePlacement(s string) Placement {
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		return Placement{Kind: PlacementSymbol, Symbol: strings.TrimSpace(s)}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Placement{Kind: PlacementVector, Vector: parts}
}

// Vec returns a vector Placement.
func Vec(x, y, z string) Placement {
	return Placement{Kind: PlacementVector, Vector: []string{x, y, z}}
}

// Sym returns a symbolic Placement.
func Sym(name string) Placement {
	return Placement{Kind: PlacementSymbol, Symbol: name}
}

func (p *Placement) UnmarshalText(text []byte) error {
	*p = ParsePlacement(string(text))
	return nil
}

func (p Placement) String() string {
	if p.Kind == PlacementSymbol {
		return p.Symbol
	}
	return strings.Join(p.Vector, ",")
}

// IsSymbol reports whether p holds a named distribution.
func (p Placement) IsSymbol() bool {
	return p.Kind == PlacementSymbol
}

// validVector reports whether p is a vector of exactly three numbers.
func (p Placement) validVector() bool {
	if p.Kind != PlacementVector || len(p.Vector) != 3 {
		return false
	}
	for _, c := range p.Vector {
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			return false
		}
	}
	return true
}
