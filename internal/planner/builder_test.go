package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmw24/IndiaElecGen/internal/econ"
	"github.com/dmw24/IndiaElecGen/internal/lp"
	"github.com/dmw24/IndiaElecGen/internal/model"
)

func testAssumptions() model.AssumptionSet {
	return model.AssumptionSet{
		"Discount rate (WACC)": 10,
		"Project life":         25,

		"Solar PV capex":     700,
		"Solar fixed O&M":    10,
		"Solar degradation":  0.005,
		"Solar PV ramp rate": 100,

		"Battery capex":                 300,
		"Battery duration":              4,
		"Battery round-trip efficiency": 85,
		"Battery fixed O&M":             5,
		"Battery degradation":           2,
		"Battery lifetime":              15,
		"Battery ramp rate":             100,

		"Diesel capex":                500,
		"Diesel fixed O&M":            15,
		"Diesel variable O&M (fuel)":  180,
		"Diesel variable O&M (other)": 5,
		"Diesel lifetime":             20,
		"Diesel ramp rate":            100,

		"CCGT capex":                800,
		"CCGT fixed O&M":            20,
		"CCGT variable O&M (fuel)":  60,
		"CCGT variable O&M (other)": 4,
		"CCGT lifetime":             30,
		"CCGT ramp rate":            100,

		"Coal capex":                1400,
		"Coal fixed O&M":            40,
		"Coal variable O&M (fuel)":  30,
		"Coal variable O&M (other)": 5,
		"Coal lifetime":             40,
		"Coal ramp rate":            100,
	}
}

func testParams(t *testing.T) *model.SystemParams {
	t.Helper()
	params, err := econ.Derive(testAssumptions())
	require.NoError(t, err)
	return params
}

func flatProfile(hours int, demand, solar float64) model.Profile {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	profile := make(model.Profile, hours)
	for i := range profile {
		profile[i] = model.HourlyPoint{
			Timestamp:     start.Add(time.Duration(i) * time.Hour),
			SolarFraction: solar,
			DemandMWh:     demand,
		}
	}
	return profile
}

func TestBuildVariableAndConstraintCounts(t *testing.T) {
	params := testParams(t)
	profile := flatProfile(3, 100, 0)

	m := Build(profile, params, 10000, 0, "counts")

	// 5 capacities, 4 gen techs x 3h, 4 battery series x 3h, 3 unserved.
	assert.Equal(t, 5+12+12+3, m.Problem.NumVars())

	// Per hour: balance + 4 gen caps + charge/discharge/energy caps + soc +
	// net = 10. Ramps: (h-1) x (4 techs + battery) x 2 = 20. No policy row.
	assert.Equal(t, 30+20, m.Problem.NumConstraints())

	withPolicy := Build(profile, params, 10000, 0.5, "counts_policy")
	assert.Equal(t, 30+20+1, withPolicy.Problem.NumConstraints())
}

func TestBuildClampsShareTarget(t *testing.T) {
	params := testParams(t)
	profile := flatProfile(2, 100, 0)

	m := Build(profile, params, 10000, 1.5, "above")
	assert.Equal(t, 1.0, m.MinNonFossilShare)

	m = Build(profile, params, 10000, -0.2, "below")
	assert.Equal(t, 0.0, m.MinNonFossilShare)
}

func TestBuildPolicyRowUsesServedDemand(t *testing.T) {
	params := testParams(t)
	profile := flatProfile(4, 100, 0)

	m := Build(profile, params, 10000, 0.75, "policy")

	var policy *lp.Constraint
	for i, con := range m.Problem.Constraints() {
		if con.Name == "maximum_fossil_share" {
			policy = &m.Problem.Constraints()[i]
			break
		}
	}
	require.NotNil(t, policy, "policy constraint missing")

	// RHS is (1-share) * total demand; unserved terms carry the same factor
	// so the cap tracks served, not raw, demand.
	assert.InDelta(t, 0.25*400, policy.RHS, 1e-9)
	for _, i := range m.Vars.Unserved {
		found := false
		for _, term := range policy.Terms {
			if term.Var == i {
				found = true
				assert.InDelta(t, 0.25, term.Coef, 1e-12)
			}
		}
		assert.True(t, found, "unserved variable missing from policy row")
	}
}

func TestBuildBatteryNetIsFree(t *testing.T) {
	params := testParams(t)
	m := Build(flatProfile(2, 100, 0), params, 10000, 0, "net")

	for _, v := range m.Vars.BatteryNet {
		assert.True(t, m.Problem.IsFree(v))
	}
	for _, v := range m.Vars.BatterySOC {
		assert.False(t, m.Problem.IsFree(v))
	}
}

func TestBuildObjectiveCoefficients(t *testing.T) {
	params := testParams(t)
	voll := 12345.0
	m := Build(flatProfile(2, 100, 0), params, voll, 0, "obj")

	for _, tech := range model.AllTechs {
		want := 1000.0 * params.Tech[tech].FixedCostPerKWYr()
		assert.InDelta(t, want, m.Problem.ObjectiveCoef(m.Vars.Capacity[tech]), 1e-9)
	}
	for _, v := range m.Vars.Unserved {
		assert.Equal(t, voll, m.Problem.ObjectiveCoef(v))
	}
	for _, v := range m.Vars.Gen[model.Diesel] {
		assert.InDelta(t, 185.0, m.Problem.ObjectiveCoef(v), 1e-9)
	}
	for _, v := range m.Vars.Gen[model.Solar] {
		assert.Zero(t, m.Problem.ObjectiveCoef(v))
	}
}
