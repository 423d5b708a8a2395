package planner

import (
	"math"
	"time"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

// servedEnergyFloor keeps ratio denominators away from zero when everything
// is unserved.
const servedEnergyFloor = 1e-9

// Extract converts a solver solution into a Result. Unresolved variables read
// as 0, so non-Optimal runs still produce a complete, inspectable table.
func Extract(m *Model, sol lp.Solution, assumptions model.AssumptionSet) *Result {
	h := m.Profile.Hours()
	params := m.Params

	capacityMW := make(map[string]float64, len(model.AllTechs))
	for _, t := range model.AllTechs {
		capacityMW[t.String()] = sol.Value(m.Vars.Capacity[t])
	}

	rows := make([]DispatchRow, h)
	installedSolar := capacityMW[model.Solar.String()]
	for i := 0; i < h; i++ {
		pt := m.Profile[i]
		row := DispatchRow{
			Timestamp:           pt.Timestamp,
			SolarProfile:        pt.SolarFraction,
			DemandMWh:           pt.DemandMWh,
			GenSolarMWh:         sol.Value(m.Vars.Gen[model.Solar][i]),
			GenDieselMWh:        sol.Value(m.Vars.Gen[model.Diesel][i]),
			GenCCGTMWh:          sol.Value(m.Vars.Gen[model.CCGT][i]),
			GenCoalMWh:          sol.Value(m.Vars.Gen[model.Coal][i]),
			BatteryChargeMWh:    sol.Value(m.Vars.BatteryCharge[i]),
			BatteryDischargeMWh: sol.Value(m.Vars.BatteryDischarge[i]),
			BatteryNetMWh:       sol.Value(m.Vars.BatteryNet[i]),
			BatterySOCMWh:       sol.Value(m.Vars.BatterySOC[i]),
			UnservedMWh:         sol.Value(m.Vars.Unserved[i]),
		}
		row.SolarPotentialMWh = pt.SolarFraction * installedSolar * params.SolarAvailability
		row.SolarCurtailmentMWh = math.Max(0, row.SolarPotentialMWh-row.GenSolarMWh)
		rows[i] = row
	}

	demandTotal := 0.0
	unservedTotal := 0.0
	annualGen := make(map[string]float64, len(model.GenTechs)+2)
	chargeTotal := 0.0
	dischargeTotal := 0.0
	for _, row := range rows {
		demandTotal += row.DemandMWh
		unservedTotal += row.UnservedMWh
		chargeTotal += row.BatteryChargeMWh
		dischargeTotal += row.BatteryDischargeMWh
		for _, t := range model.GenTechs {
			annualGen[t.String()] += row.Gen(t)
		}
	}
	annualGen["battery_charge"] = chargeTotal
	annualGen["battery_discharge"] = dischargeTotal

	servedTotal := math.Max(servedEnergyFloor, demandTotal-unservedTotal)

	fossilTotal := 0.0
	for _, t := range model.FossilTechs() {
		fossilTotal += annualGen[t.String()]
	}
	fossilShare := fossilTotal / servedTotal
	nonFossilShare := 1.0 - fossilShare
	solarShare := annualGen[model.Solar.String()] / servedTotal

	// Cost components from capacity/generation times the derived rates.
	capexCost := make(map[string]float64, len(model.AllTechs))
	fixedOMCost := make(map[string]float64, len(model.AllTechs))
	varOMCost := make(map[string]float64, len(model.AllTechs))
	fixedCost := make(map[string]float64, len(model.AllTechs))
	variableCost := make(map[string]float64, len(model.GenTechs))
	components := make(map[string]CostComponents, len(model.AllTechs))
	var totals CostComponentTotals

	lifetimes := make(map[string]float64, len(model.AllTechs))
	rampPerMin := make(map[string]float64, len(model.AllTechs))

	for _, t := range model.AllTechs {
		key := t.String()
		tp := params.Tech[t]
		capMW := capacityMW[key]

		capex := capMW * 1000.0 * tp.AnnualizedCapexPerKWYr
		fixedOM := capMW * 1000.0 * tp.FixedOMPerKWYr
		varOM := annualGen[key] * tp.VarOMPerMWh

		capexCost[key] = capex
		fixedOMCost[key] = fixedOM
		varOMCost[key] = varOM
		fixedCost[key] = capex + fixedOM
		if t.IsGenerating() {
			variableCost[key] = varOM
		}
		components[key] = CostComponents{
			CapexAnnualizedUSD: capex,
			FixedOMUSD:         fixedOM,
			VarOMUSD:           varOM,
			TotalUSD:           capex + fixedOM + varOM,
		}
		totals.CapexAnnualizedUSD += capex
		totals.FixedOMUSD += fixedOM
		totals.VarOMUSD += varOM

		lifetimes[key] = tp.LifetimeYears
		rampPerMin[key] = tp.RampPerMinFraction
	}
	unservedPenalty := unservedTotal * m.VOLL
	totals.UnservedPenaltyUSD = unservedPenalty

	totalFixed := 0.0
	for _, v := range fixedCost {
		totalFixed += v
	}
	totalVariable := 0.0
	for _, v := range variableCost {
		totalVariable += v
	}

	summary := Summary{
		ScenarioName: m.ScenarioName,
		Status:       sol.Status,

		ObjectiveUSD:        sol.Objective,
		LCOEUSDPerMWhServed: sol.Objective / servedTotal,

		TotalDemandMWh:    demandTotal,
		ServedEnergyMWh:   servedTotal,
		UnservedEnergyMWh: unservedTotal,

		MinNonFossilShareTarget:             m.MinNonFossilShare,
		AchievedFossilShareServedPrimary:    fossilShare,
		AchievedNonFossilShareServedPrimary: nonFossilShare,
		AchievedSolarShareServed:            solarShare,
		AchievedNonFossilShare:              nonFossilShare,
		ShareMetricDefinition:               shareMetricDefinition,

		CapacityMW:          capacityMW,
		AnnualGenerationMWh: annualGen,

		CostComponentsByTechnology: components,
		CostComponentTotals:        totals,
		FixedCostUSD:               fixedCost,
		VariableCostUSD:            variableCost,
		UnservedPenaltyUSD:         unservedPenalty,
		TotalFixedCostUSD:          totalFixed,
		TotalVariableCostUSD:       totalVariable,

		VOLLUSDPerMWh:                    m.VOLL,
		WACCFraction:                     params.WACC,
		ProjectLifeYears:                 params.ProjectLifeYears,
		TechnologyLifetimesYears:         lifetimes,
		CapacityFactorConstraintsApplied: false,
		Battery: BatterySummary{
			DurationHours:       params.Battery.DurationHours,
			RoundTripEfficiency: params.Battery.RoundTripEfficiency,
			ChargeEfficiency:    params.Battery.ChargeEfficiency,
			DischargeEfficiency: params.Battery.DischargeEfficiency,
		},
		RampRatePerMinFractionOfCapacity: rampPerMin,

		HoursModeled:   h,
		TimestampStart: rows[0].Timestamp.Format(time.RFC3339),
		TimestampEnd:   rows[h-1].Timestamp.Format(time.RFC3339),
	}

	return &Result{
		Summary:     summary,
		Hourly:      rows,
		Assumptions: assumptions,
	}
}
