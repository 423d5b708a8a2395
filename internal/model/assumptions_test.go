package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssumptionSetAccess(t *testing.T) {
	set := AssumptionSet{"Solar PV capex": 700}

	v, err := set.Need("Solar PV capex")
	require.NoError(t, err)
	assert.Equal(t, 700.0, v)

	_, err = set.Need("Wind capex")
	require.Error(t, err)
	var missing *MissingAssumptionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Wind capex", missing.Key)
	assert.Equal(t, "missing assumption: Wind capex", err.Error())

	assert.Equal(t, 700.0, set.Get("Solar PV capex", 0))
	assert.Equal(t, 4.0, set.Get("Battery duration", 4.0))
	assert.True(t, set.Has("Solar PV capex"))
	assert.False(t, set.Has("Battery duration"))
}

func TestAssumptionSetSortedKeys(t *testing.T) {
	set := AssumptionSet{
		"battery capex":        1,
		"Battery duration":     2,
		"Solar PV capex":       3,
		"CCGT lifetime":        4,
		"Discount rate (WACC)": 5,
	}
	want := []string{
		"battery capex",
		"Battery duration",
		"CCGT lifetime",
		"Discount rate (WACC)",
		"Solar PV capex",
	}
	assert.Equal(t, want, set.SortedKeys())
}
