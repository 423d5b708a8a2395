package model

import "fmt"

// Tech enumerates the technologies in the portfolio. The names are stable;
// they appear as keys in summary.json and as CSV column suffixes.
type Tech int

const (
	Solar Tech = iota
	Battery
	Diesel
	CCGT
	Coal
)

// AllTechs is every technology eligible for capacity build-out.
var AllTechs = []Tech{Solar, Battery, Diesel, CCGT, Coal}

// GenTechs is every technology with a primary generation variable.
// The battery only shifts energy, it never generates.
var GenTechs = []Tech{Solar, Diesel, CCGT, Coal}

func (t Tech) String() string {
	switch t {
	case Solar:
		return "solar"
	case Battery:
		return "battery"
	case Diesel:
		return "diesel"
	case CCGT:
		return "ccgt"
	case Coal:
		return "coal"
	default:
		return fmt.Sprintf("tech(%d)", int(t))
	}
}

// IsGenerating reports whether the technology has per-hour generation
// variables in the dispatch model.
func (t Tech) IsGenerating() bool { return t != Battery }

// HasStorage reports whether the technology carries state of charge.
func (t Tech) HasStorage() bool { return t == Battery }

// IsFossil reports whether the technology counts against the non-fossil
// share policy.
func (t Tech) IsFossil() bool {
	return t == Diesel || t == CCGT || t == Coal
}

// FossilTechs returns the generating technologies that count as fossil.
func FossilTechs() []Tech {
	out := make([]Tech, 0, len(GenTechs))
	for _, t := range GenTechs {
		if t.IsFossil() {
			out = append(out, t)
		}
	}
	return out
}
