package planner

import (
	"time"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

// shareMetricDefinition documents the served-energy convention embedded in
// summary.json. Consumers must not assume any other denominator.
const shareMetricDefinition = "Primary generation share on served demand: " +
	"fossil=(diesel+ccgt+coal)/served_demand, " +
	"non_fossil=1-fossil. Battery discharge is excluded from share denominator."

// DispatchRow is one hour of solved dispatch, the primary "what happened"
// artifact. Column order in hourly_dispatch.csv follows the field order here.
type DispatchRow struct {
	Timestamp time.Time

	SolarProfile float64
	DemandMWh    float64

	GenSolarMWh  float64
	GenDieselMWh float64
	GenCCGTMWh   float64
	GenCoalMWh   float64

	BatteryChargeMWh    float64
	BatteryDischargeMWh float64
	BatteryNetMWh       float64
	BatterySOCMWh       float64

	UnservedMWh float64

	SolarPotentialMWh   float64
	SolarCurtailmentMWh float64
}

// Gen returns the row's generation for a generating technology.
func (r DispatchRow) Gen(t model.Tech) float64 {
	switch t {
	case model.Solar:
		return r.GenSolarMWh
	case model.Diesel:
		return r.GenDieselMWh
	case model.CCGT:
		return r.GenCCGTMWh
	case model.Coal:
		return r.GenCoalMWh
	default:
		return 0
	}
}

// CostComponents breaks one technology's annual cost into its parts.
type CostComponents struct {
	CapexAnnualizedUSD float64 `json:"capex_annualized_usd"`
	FixedOMUSD         float64 `json:"fixed_om_usd"`
	VarOMUSD           float64 `json:"var_om_usd"`
	TotalUSD           float64 `json:"total_usd"`
}

// CostComponentTotals sums the components across technologies.
type CostComponentTotals struct {
	CapexAnnualizedUSD float64 `json:"capex_annualized_usd"`
	FixedOMUSD         float64 `json:"fixed_om_usd"`
	VarOMUSD           float64 `json:"var_om_usd"`
	UnservedPenaltyUSD float64 `json:"unserved_penalty_usd"`
}

// BatterySummary records the storage parameters the scenario solved with.
type BatterySummary struct {
	DurationHours       float64 `json:"duration_hours"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
}

// Summary is the per-scenario summary.json record. Every KPI here is
// recomputed from the solved primal values, so it reconciles exactly with the
// hourly table; only the levelized-cost numerator comes from the objective.
type Summary struct {
	ScenarioName string    `json:"scenario_name"`
	Status       lp.Status `json:"status"`

	ObjectiveUSD        float64 `json:"objective_usd"`
	LCOEUSDPerMWhServed float64 `json:"lcoe_usd_per_mwh_served"`

	TotalDemandMWh    float64 `json:"total_demand_mwh"`
	ServedEnergyMWh   float64 `json:"served_energy_mwh"`
	UnservedEnergyMWh float64 `json:"unserved_energy_mwh"`

	MinNonFossilShareTarget             float64 `json:"min_non_fossil_share_target"`
	AchievedFossilShareServedPrimary    float64 `json:"achieved_fossil_share_served_primary"`
	AchievedNonFossilShareServedPrimary float64 `json:"achieved_non_fossil_share_served_primary"`
	AchievedSolarShareServed            float64 `json:"achieved_solar_share_served"`
	// Backward-compatible alias tied to the primary served-energy definition.
	AchievedNonFossilShare float64 `json:"achieved_non_fossil_share"`
	ShareMetricDefinition  string  `json:"share_metric_definition"`

	CapacityMW          map[string]float64 `json:"capacity_mw"`
	AnnualGenerationMWh map[string]float64 `json:"annual_generation_mwh"`

	CostComponentsByTechnology map[string]CostComponents `json:"cost_components_by_technology"`
	CostComponentTotals        CostComponentTotals       `json:"cost_component_totals"`
	FixedCostUSD               map[string]float64        `json:"fixed_cost_usd"`
	VariableCostUSD            map[string]float64        `json:"variable_cost_usd"`
	UnservedPenaltyUSD         float64                   `json:"unserved_penalty_usd"`
	TotalFixedCostUSD          float64                   `json:"total_fixed_cost_usd"`
	TotalVariableCostUSD       float64                   `json:"total_variable_cost_usd"`

	VOLLUSDPerMWh                    float64            `json:"voll_usd_per_mwh"`
	WACCFraction                     float64            `json:"wacc_fraction"`
	ProjectLifeYears                 *float64           `json:"project_life_years"`
	TechnologyLifetimesYears         map[string]float64 `json:"technology_lifetimes_years"`
	CapacityFactorConstraintsApplied bool               `json:"capacity_factor_constraints_applied"`
	Battery                          BatterySummary     `json:"battery"`
	RampRatePerMinFractionOfCapacity map[string]float64 `json:"ramp_rate_per_min_fraction_of_capacity"`

	HoursModeled   int    `json:"hours_modeled"`
	TimestampStart string `json:"timestamp_start"`
	TimestampEnd   string `json:"timestamp_end"`
}

// Result bundles everything one scenario produced: the summary, the hourly
// dispatch table, and the exact assumptions used (the audit trail).
// Summary and table are mutually consistent by construction.
type Result struct {
	Summary     Summary
	Hourly      []DispatchRow
	Assumptions model.AssumptionSet
}
