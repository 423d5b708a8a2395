package model

import (
	"fmt"
	"time"
)

// HourlyPoint is one hour of the planning horizon.
//
// SolarFraction is the per-unit solar availability for the hour (the upstream
// workbook does not clamp it, so values slightly above 1 can appear).
// DemandMWh is the total demand for the hour.
type HourlyPoint struct {
	Timestamp     time.Time
	SolarFraction float64
	DemandMWh     float64
}

// Profile is a chronologically ordered hourly series covering the planning
// horizon. It is read-only once loaded; scenarios share a single Profile.
type Profile []HourlyPoint

// Hours returns the horizon length.
func (p Profile) Hours() int { return len(p) }

// TotalDemandMWh sums demand over the horizon.
func (p Profile) TotalDemandMWh() float64 {
	total := 0.0
	for _, pt := range p {
		total += pt.DemandMWh
	}
	return total
}

// Validate checks the ordering invariants: at least one hour, strictly
// increasing timestamps (which also rules out duplicates), and non-negative
// demand.
func (p Profile) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("profile is empty")
	}
	for i, pt := range p {
		if pt.Timestamp.IsZero() {
			return fmt.Errorf("profile row %d has a zero timestamp", i)
		}
		if pt.DemandMWh < 0 {
			return fmt.Errorf("profile row %d has negative demand %f", i, pt.DemandMWh)
		}
		if i > 0 && !p[i-1].Timestamp.Before(pt.Timestamp) {
			return fmt.Errorf("profile timestamps not strictly increasing at row %d (%s then %s)",
				i, p[i-1].Timestamp, pt.Timestamp)
		}
	}
	return nil
}
