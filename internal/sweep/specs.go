// Package sweep runs the model across a set of minimum non-fossil-share
// targets and aggregates the per-scenario summaries into a scenario index.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Spec names one sweep member and its minimum non-fossil share target.
type Spec struct {
	Name        string
	TargetShare float64
}

// DefaultSpecs is the standard policy sweep.
var DefaultSpecs = []Spec{
	{Name: "nf70", TargetShare: 0.70},
	{Name: "nf80", TargetShare: 0.80},
	{Name: "nf90", TargetShare: 0.90},
	{Name: "nf95", TargetShare: 0.95},
	{Name: "nf99", TargetShare: 0.99},
}

// ParseSpecs parses a comma-separated scenario list. Entries are either
// "name:share" pairs ("nf70:0.7") or bare numbers ("70" or "0.7") that get an
// auto-generated nfNN name. An empty string yields DefaultSpecs. Names must
// be unique within a sweep.
func ParseSpecs(raw string) ([]Spec, error) {
	if strings.TrimSpace(raw) == "" {
		out := make([]Spec, len(DefaultSpecs))
		copy(out, DefaultSpecs)
		return out, nil
	}

	var specs []Spec
	seen := make(map[string]bool)
	for _, entry := range strings.Split(raw, ",") {
		piece := strings.TrimSpace(entry)
		if piece == "" {
			continue
		}

		var spec Spec
		if name, value, ok := strings.Cut(piece, ":"); ok {
			share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: invalid share: %w", piece, err)
			}
			spec = Spec{Name: strings.TrimSpace(name), TargetShare: share}
		} else {
			pct, err := strconv.ParseFloat(piece, 64)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: invalid value: %w", piece, err)
			}
			if pct > 1 {
				pct = pct / 100.0
			}
			spec = Spec{
				Name:        fmt.Sprintf("nf%d", int(math.Round(pct*100))),
				TargetShare: pct,
			}
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("scenario %q: empty name", piece)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", spec.Name)
		}
		seen[spec.Name] = true
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no scenarios parsed from %q", raw)
	}
	return specs, nil
}

// Label renders the index label for a target share, e.g. ">=90% non-fossil".
func (s Spec) Label() string {
	return fmt.Sprintf(">=%d%% non-fossil", int(math.Round(s.clamped()*100)))
}

func (s Spec) clamped() float64 {
	share := s.TargetShare
	if share < 0 {
		return 0
	}
	if share > 1 {
		return 1
	}
	return share
}
