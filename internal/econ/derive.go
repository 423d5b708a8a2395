// Package econ converts raw workbook assumptions into the derived
// per-technology economics the model builder consumes.
package econ

import (
	"math"

	"github.com/dmw24/IndiaElecGen/internal/model"
)

// ToFraction normalizes percent-like inputs. Values above 1.0 are treated as
// 0-100 percentages and divided by 100; values at or below 1.0 are assumed to
// already be fractions. A value of exactly 1.0 is ambiguous (1% vs 100%) and
// is kept as a fraction.
func ToFraction(value float64) float64 {
	if value > 1.0 {
		return value / 100.0
	}
	return value
}

// CRF is the capital recovery factor for discount rate r over n years:
// r*(1+r)^n / ((1+r)^n - 1). At r=0 it degenerates to 1/n.
func CRF(r, n float64) float64 {
	if r == 0 {
		return 1.0 / n
	}
	growth := math.Pow(1+r, n)
	return (r * growth) / (growth - 1)
}

// AnnualizedCapexPerKW converts upfront capex ($/kW) into an annualized
// $/kW-yr payment. A non-positive life yields 0, effectively disabling the
// technology.
func AnnualizedCapexPerKW(capexPerKW, wacc, lifeYears float64) float64 {
	if lifeYears <= 0 {
		return 0.0
	}
	return capexPerKW * CRF(wacc, lifeYears)
}

// defaultBatteryDurationHours applies when the workbook omits
// "Battery duration".
const defaultBatteryDurationHours = 4.0

// techKeys holds the workbook assumption names for one technology
// ("Solar PV capex", "CCGT fixed O&M", ...). Solar's capex/ramp keys carry
// the "PV" suffix, the rest match the tech label.
type techKeys struct {
	capex    string
	fixedOM  string
	ramp     string
	lifetime string
	varFuel  string
	varOther string
}

func keysFor(t model.Tech) techKeys {
	switch t {
	case model.Solar:
		return techKeys{
			capex:    "Solar PV capex",
			fixedOM:  "Solar fixed O&M",
			ramp:     "Solar PV ramp rate",
			lifetime: "Solar lifetime",
		}
	case model.Battery:
		return techKeys{
			capex:    "Battery capex",
			fixedOM:  "Battery fixed O&M",
			ramp:     "Battery ramp rate",
			lifetime: "Battery lifetime",
		}
	case model.Diesel:
		return techKeys{
			capex:    "Diesel capex",
			fixedOM:  "Diesel fixed O&M",
			ramp:     "Diesel ramp rate",
			lifetime: "Diesel lifetime",
			varFuel:  "Diesel variable O&M (fuel)",
			varOther: "Diesel variable O&M (other)",
		}
	case model.CCGT:
		return techKeys{
			capex:    "CCGT capex",
			fixedOM:  "CCGT fixed O&M",
			ramp:     "CCGT ramp rate",
			lifetime: "CCGT lifetime",
			varFuel:  "CCGT variable O&M (fuel)",
			varOther: "CCGT variable O&M (other)",
		}
	case model.Coal:
		return techKeys{
			capex:    "Coal capex",
			fixedOM:  "Coal fixed O&M",
			ramp:     "Coal ramp rate",
			lifetime: "Coal lifetime",
			varFuel:  "Coal variable O&M (fuel)",
			varOther: "Coal variable O&M (other)",
		}
	}
	return techKeys{}
}

// Derive builds SystemParams from the workbook assumptions. Any missing
// required key fails with *model.MissingAssumptionError; the only sanctioned
// fallback is a per-technology lifetime falling back to "Project life".
func Derive(assumptions model.AssumptionSet) (*model.SystemParams, error) {
	waccRaw, err := assumptions.Need("Discount rate (WACC)")
	if err != nil {
		return nil, err
	}
	wacc := ToFraction(waccRaw)

	var projectLife *float64
	if assumptions.Has("Project life") {
		v := assumptions["Project life"]
		projectLife = &v
	}

	lifetime := func(key string) (float64, error) {
		if assumptions.Has(key) {
			return assumptions[key], nil
		}
		if projectLife != nil {
			return *projectLife, nil
		}
		return 0, &model.MissingAssumptionError{Key: key}
	}

	solarDegRaw, err := assumptions.Need("Solar degradation")
	if err != nil {
		return nil, err
	}
	solarAvailable := math.Max(0.0, 1.0-ToFraction(solarDegRaw))

	batteryDuration := assumptions.Get("Battery duration", defaultBatteryDurationHours)
	batteryRTERaw, err := assumptions.Need("Battery round-trip efficiency")
	if err != nil {
		return nil, err
	}
	batteryRTE := ToFraction(batteryRTERaw)
	batteryDegRaw, err := assumptions.Need("Battery degradation")
	if err != nil {
		return nil, err
	}
	batteryEnergyAvailable := math.Max(0.0, 1.0-ToFraction(batteryDegRaw))

	// Split round-trip efficiency evenly across the two legs; the clamp keeps
	// the discharge leg away from a zero divisor.
	batteryEff := math.Max(1e-6, math.Min(batteryRTE, 1.0))
	eta := math.Sqrt(batteryEff)

	params := &model.SystemParams{
		Tech:              make(map[model.Tech]model.TechParams, len(model.AllTechs)),
		SolarAvailability: solarAvailable,
		WACC:              wacc,
		ProjectLifeYears:  projectLife,
		Battery: model.BatteryParams{
			DurationHours:       batteryDuration,
			RoundTripEfficiency: batteryRTE,
			ChargeEfficiency:    eta,
			DischargeEfficiency: eta,
			EnergyAvailability:  batteryEnergyAvailable,
		},
	}

	for _, t := range model.AllTechs {
		keys := keysFor(t)

		capex, err := assumptions.Need(keys.capex)
		if err != nil {
			return nil, err
		}
		fixedOM, err := assumptions.Need(keys.fixedOM)
		if err != nil {
			return nil, err
		}
		rampRaw, err := assumptions.Need(keys.ramp)
		if err != nil {
			return nil, err
		}
		life, err := lifetime(keys.lifetime)
		if err != nil {
			return nil, err
		}

		varOM := 0.0
		if keys.varFuel != "" {
			fuel, err := assumptions.Need(keys.varFuel)
			if err != nil {
				return nil, err
			}
			other, err := assumptions.Need(keys.varOther)
			if err != nil {
				return nil, err
			}
			varOM = fuel + other
		}

		if t == model.Battery {
			// Battery capex is quoted $/kWh of energy; scale by duration to
			// get $/kW of power before annualizing. Fixed O&M is $/kWh-yr and
			// converts the same way.
			capex = capex * batteryDuration
			fixedOM = fixedOM * batteryDuration
		}

		// Ramp assumptions are fractions of capacity per minute; the model
		// runs hourly, so scale by 60. A workbook already quoting per-hour
		// rates would be overstated 60x here and is not detectable.
		rampPerMin := ToFraction(rampRaw)

		params.Tech[t] = model.TechParams{
			AnnualizedCapexPerKWYr: AnnualizedCapexPerKW(capex, wacc, life),
			FixedOMPerKWYr:         fixedOM,
			VarOMPerMWh:            varOM,
			RampPerMinFraction:     rampPerMin,
			RampPerHourFraction:    rampPerMin * 60.0,
			LifetimeYears:          life,
		}
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}
