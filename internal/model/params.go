package model

import "errors"

// TechParams holds the derived per-technology economics.
// Units:
// - AnnualizedCapexPerKWYr, FixedOMPerKWYr: $/kW-yr
// - VarOMPerMWh: $/MWh (zero for solar and battery)
// - RampPerMinFraction: fraction of capacity per minute (as supplied)
// - RampPerHourFraction: fraction of capacity per hour (derived, x60)
type TechParams struct {
	AnnualizedCapexPerKWYr float64
	FixedOMPerKWYr         float64
	VarOMPerMWh            float64
	RampPerMinFraction     float64
	RampPerHourFraction    float64
	LifetimeYears          float64
}

// FixedCostPerKWYr is the total annual fixed charge per kW of capacity.
func (p TechParams) FixedCostPerKWYr() float64 {
	return p.AnnualizedCapexPerKWYr + p.FixedOMPerKWYr
}

// BatteryParams holds the storage-specific derived parameters.
// The round-trip efficiency is split evenly between the charge and discharge
// legs (square root each); this is a modeling convention, not measured
// per-leg losses.
type BatteryParams struct {
	DurationHours       float64
	RoundTripEfficiency float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	// EnergyAvailability is 1 minus the battery degradation fraction; it
	// scales the usable energy capacity over the single-year horizon.
	EnergyAvailability float64
}

// SystemParams is the full derived parameter set one scenario solves against.
type SystemParams struct {
	Tech    map[Tech]TechParams
	Battery BatteryParams

	// SolarAvailability is 1 minus the solar degradation fraction.
	SolarAvailability float64

	WACC float64
	// ProjectLifeYears is the general lifetime fallback; nil when the
	// workbook does not provide one.
	ProjectLifeYears *float64
}

// Validate checks the invariants the model builder relies on.
func (s *SystemParams) Validate() error {
	if s == nil {
		return errors.New("params are nil")
	}
	for _, t := range AllTechs {
		if _, ok := s.Tech[t]; !ok {
			return errors.New("params missing technology " + t.String())
		}
	}
	b := s.Battery
	if b.ChargeEfficiency <= 0 || b.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if b.DischargeEfficiency <= 0 || b.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if b.DurationHours < 0 {
		return errors.New("DurationHours must be >= 0")
	}
	if s.SolarAvailability < 0 || s.SolarAvailability > 1 {
		return errors.New("SolarAvailability must be in [0, 1]")
	}
	return nil
}
