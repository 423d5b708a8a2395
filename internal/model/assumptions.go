package model

import (
	"fmt"
	"sort"
	"strings"
)

// AssumptionSet maps workbook assumption names ("Solar PV capex", "Discount
// rate (WACC)", ...) to numeric values. Required economic parameters have no
// silent defaults: a missing key is a hard error surfaced via Need.
type AssumptionSet map[string]float64

// MissingAssumptionError identifies the absent required key.
type MissingAssumptionError struct {
	Key string
}

func (e *MissingAssumptionError) Error() string {
	return fmt.Sprintf("missing assumption: %s", e.Key)
}

// Need returns the value for a required key.
func (a AssumptionSet) Need(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, &MissingAssumptionError{Key: key}
	}
	return v, nil
}

// Get returns the value for an optional key, or def when absent.
func (a AssumptionSet) Get(key string, def float64) float64 {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Has reports whether the key is present.
func (a AssumptionSet) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// SortedKeys returns the assumption names in case-insensitive alphabetical
// order, the order used by the assumptions_used.csv audit trail.
func (a AssumptionSet) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	return keys
}
