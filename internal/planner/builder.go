// Package planner builds the capacity-expansion LP for one scenario, turns a
// solver solution back into dispatch and economics, and writes the per-scenario
// artifacts.
package planner

import (
	"fmt"

	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

// Vars indexes every decision variable of one scenario model. All slices are
// horizon-length; Gen only carries generating technologies.
type Vars struct {
	Capacity map[model.Tech]int
	Gen      map[model.Tech][]int

	BatteryCharge    []int
	BatteryDischarge []int
	BatterySOC       []int
	BatteryNet       []int
	Unserved         []int
}

// Model is a fully built scenario LP plus the inputs needed to interpret its
// solution. Variable and constraint state is scoped to one scenario solve and
// never reused.
type Model struct {
	Problem *lp.Problem
	Vars    Vars

	Profile model.Profile
	Params  *model.SystemParams

	VOLL              float64
	MinNonFossilShare float64
	ScenarioName      string
}

// Build constructs the scenario LP.
//
// Objective (minimize): capacity * 1000 * fixed $/kW-yr, plus generation
// variable O&M, plus unserved energy at VOLL.
//
// Per hour: energy balance (equality), generation capacity bounds (solar
// scaled by profile and availability), battery charge/discharge/SOC bounds,
// cyclic storage continuity, and the net-flow definition. Ramp limits apply
// between consecutive hours only; the storage balance is the only constraint
// that wraps from the last hour back to the first.
//
// The policy constraint caps fossil generation at (1-share) of served demand.
// Served demand subtracts the unserved variable, so shedding load loosens the
// fossil cap; the VOLL term is the only pressure against that.
func Build(profile model.Profile, params *model.SystemParams, voll, minNonFossilShare float64, scenarioName string) *Model {
	h := profile.Hours()
	p := lp.NewProblem(fmt.Sprintf("grid_hourly_lp_%s", scenarioName))

	if minNonFossilShare < 0 {
		minNonFossilShare = 0
	}
	if minNonFossilShare > 1 {
		minNonFossilShare = 1
	}

	vars := Vars{
		Capacity:         make(map[model.Tech]int, len(model.AllTechs)),
		Gen:              make(map[model.Tech][]int, len(model.GenTechs)),
		BatteryCharge:    make([]int, h),
		BatteryDischarge: make([]int, h),
		BatterySOC:       make([]int, h),
		BatteryNet:       make([]int, h),
		Unserved:         make([]int, h),
	}

	for _, t := range model.AllTechs {
		vars.Capacity[t] = p.AddVar(fmt.Sprintf("capacity_mw_%s", t))
	}
	for _, t := range model.GenTechs {
		gen := make([]int, h)
		for i := 0; i < h; i++ {
			gen[i] = p.AddVar(fmt.Sprintf("gen_mwh_%s_%d", t, i))
		}
		vars.Gen[t] = gen
	}
	for i := 0; i < h; i++ {
		vars.BatteryCharge[i] = p.AddVar(fmt.Sprintf("battery_charge_mwh_%d", i))
		vars.BatteryDischarge[i] = p.AddVar(fmt.Sprintf("battery_discharge_mwh_%d", i))
		vars.BatterySOC[i] = p.AddVar(fmt.Sprintf("battery_soc_mwh_%d", i))
		// Net flow is discharge minus charge and can go either way.
		vars.BatteryNet[i] = p.AddFreeVar(fmt.Sprintf("battery_net_mwh_%d", i))
		vars.Unserved[i] = p.AddVar(fmt.Sprintf("unserved_mwh_%d", i))
	}

	// Objective. Capacity is MW, fixed rates are $/kW-yr, hence the 1000.
	for _, t := range model.AllTechs {
		p.SetObjectiveCoef(vars.Capacity[t], 1000.0*params.Tech[t].FixedCostPerKWYr())
	}
	for _, t := range model.GenTechs {
		varOM := params.Tech[t].VarOMPerMWh
		if varOM == 0 {
			continue
		}
		for i := 0; i < h; i++ {
			p.SetObjectiveCoef(vars.Gen[t][i], varOM)
		}
	}
	for i := 0; i < h; i++ {
		p.SetObjectiveCoef(vars.Unserved[i], voll)
	}

	bat := params.Battery
	socCapPerMW := bat.DurationHours * bat.EnergyAvailability

	for i := 0; i < h; i++ {
		pt := profile[i]

		// Energy balance: generation + discharge - charge + unserved = demand.
		balance := make([]lp.Term, 0, len(model.GenTechs)+3)
		for _, t := range model.GenTechs {
			balance = append(balance, lp.Term{Var: vars.Gen[t][i], Coef: 1})
		}
		balance = append(balance,
			lp.Term{Var: vars.BatteryDischarge[i], Coef: 1},
			lp.Term{Var: vars.BatteryCharge[i], Coef: -1},
			lp.Term{Var: vars.Unserved[i], Coef: 1},
		)
		p.AddConstraint(fmt.Sprintf("balance_%d", i), lp.Eq, pt.DemandMWh, balance...)

		// Capacity bounds. Solar is additionally scaled by the hourly profile
		// and the degradation-adjusted availability.
		for _, t := range model.GenTechs {
			capCoef := -1.0
			if t == model.Solar {
				capCoef = -pt.SolarFraction * params.SolarAvailability
			}
			p.AddConstraint(fmt.Sprintf("%s_cap_%d", t, i), lp.LessEq, 0,
				lp.Term{Var: vars.Gen[t][i], Coef: 1},
				lp.Term{Var: vars.Capacity[t], Coef: capCoef},
			)
		}

		p.AddConstraint(fmt.Sprintf("battery_charge_cap_%d", i), lp.LessEq, 0,
			lp.Term{Var: vars.BatteryCharge[i], Coef: 1},
			lp.Term{Var: vars.Capacity[model.Battery], Coef: -1},
		)
		p.AddConstraint(fmt.Sprintf("battery_discharge_cap_%d", i), lp.LessEq, 0,
			lp.Term{Var: vars.BatteryDischarge[i], Coef: 1},
			lp.Term{Var: vars.Capacity[model.Battery], Coef: -1},
		)
		p.AddConstraint(fmt.Sprintf("battery_energy_cap_%d", i), lp.LessEq, 0,
			lp.Term{Var: vars.BatterySOC[i], Coef: 1},
			lp.Term{Var: vars.Capacity[model.Battery], Coef: -socCapPerMW},
		)

		// Storage continuity with a cyclic boundary: hour 0 carries over from
		// the last hour, closing the annual cycle.
		prev := i - 1
		if i == 0 {
			prev = h - 1
		}
		p.AddConstraint(fmt.Sprintf("battery_soc_balance_%d", i), lp.Eq, 0,
			lp.Term{Var: vars.BatterySOC[i], Coef: 1},
			lp.Term{Var: vars.BatterySOC[prev], Coef: -1},
			lp.Term{Var: vars.BatteryCharge[i], Coef: -bat.ChargeEfficiency},
			lp.Term{Var: vars.BatteryDischarge[i], Coef: 1.0 / bat.DischargeEfficiency},
		)

		p.AddConstraint(fmt.Sprintf("battery_net_%d", i), lp.Eq, 0,
			lp.Term{Var: vars.BatteryNet[i], Coef: 1},
			lp.Term{Var: vars.BatteryDischarge[i], Coef: -1},
			lp.Term{Var: vars.BatteryCharge[i], Coef: 1},
		)
	}

	// Ramp limits between consecutive hours, both directions. These do not
	// wrap around the horizon.
	for i := 1; i < h; i++ {
		for _, t := range model.GenTechs {
			ramp := params.Tech[t].RampPerHourFraction
			p.AddConstraint(fmt.Sprintf("ramp_up_%s_%d", t, i), lp.LessEq, 0,
				lp.Term{Var: vars.Gen[t][i], Coef: 1},
				lp.Term{Var: vars.Gen[t][i-1], Coef: -1},
				lp.Term{Var: vars.Capacity[t], Coef: -ramp},
			)
			p.AddConstraint(fmt.Sprintf("ramp_down_%s_%d", t, i), lp.LessEq, 0,
				lp.Term{Var: vars.Gen[t][i-1], Coef: 1},
				lp.Term{Var: vars.Gen[t][i], Coef: -1},
				lp.Term{Var: vars.Capacity[t], Coef: -ramp},
			)
		}

		batteryRamp := params.Tech[model.Battery].RampPerHourFraction
		p.AddConstraint(fmt.Sprintf("ramp_up_battery_%d", i), lp.LessEq, 0,
			lp.Term{Var: vars.BatteryNet[i], Coef: 1},
			lp.Term{Var: vars.BatteryNet[i-1], Coef: -1},
			lp.Term{Var: vars.Capacity[model.Battery], Coef: -batteryRamp},
		)
		p.AddConstraint(fmt.Sprintf("ramp_down_battery_%d", i), lp.LessEq, 0,
			lp.Term{Var: vars.BatteryNet[i-1], Coef: 1},
			lp.Term{Var: vars.BatteryNet[i], Coef: -1},
			lp.Term{Var: vars.Capacity[model.Battery], Coef: -batteryRamp},
		)
	}

	// Policy: fossil generation may not exceed (1-share) of served demand.
	// Σ fossil_gen <= (1-s)·Σ(demand - unserved), rearranged so every
	// variable sits on the left.
	if minNonFossilShare > 0 {
		servedFactor := 1.0 - minNonFossilShare
		terms := make([]lp.Term, 0, len(model.FossilTechs())*h+h)
		rhs := 0.0
		for _, t := range model.FossilTechs() {
			for i := 0; i < h; i++ {
				terms = append(terms, lp.Term{Var: vars.Gen[t][i], Coef: 1})
			}
		}
		for i := 0; i < h; i++ {
			terms = append(terms, lp.Term{Var: vars.Unserved[i], Coef: servedFactor})
			rhs += servedFactor * profile[i].DemandMWh
		}
		p.AddConstraint("maximum_fossil_share", lp.LessEq, rhs, terms...)
	}

	return &Model{
		Problem:           p,
		Vars:              vars,
		Profile:           profile,
		Params:            params,
		VOLL:              voll,
		MinNonFossilShare: minNonFossilShare,
		ScenarioName:      scenarioName,
	}
}
