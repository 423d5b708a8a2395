package sweep

import (
	"encoding/json"
	"os"
)

// IndexFile is the sweep-level artifact name inside the output root.
const IndexFile = "scenario_index.json"

// IndexEntry is one scenario's row in the sweep index. Rows appear in spec
// order regardless of execution order.
type IndexEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	ThresholdNonFossilShare   float64 `json:"threshold_non_fossil_share"`
	EnforcedMinNonFossilShare float64 `json:"enforced_min_non_fossil_share"`
	MinNonFossilShare         float64 `json:"min_non_fossil_share"`

	AchievedFossilShareServedPrimary    float64 `json:"achieved_fossil_share_served_primary"`
	AchievedNonFossilShareServedPrimary float64 `json:"achieved_non_fossil_share_served_primary"`
	AchievedSolarShareServed            float64 `json:"achieved_solar_share_served"`
	AchievedNonFossilShare              float64 `json:"achieved_non_fossil_share"`

	Status              string  `json:"status"`
	LCOEUSDPerMWhServed float64 `json:"lcoe_usd_per_mwh_served"`
	ObjectiveUSD        float64 `json:"objective_usd"`
	OutputDir           string  `json:"output_dir"`

	// Error is set only on scenarios that failed before producing a summary.
	Error string `json:"error,omitempty"`
}

// Index is the scenario_index.json payload.
type Index struct {
	GeneratedAtUTC string       `json:"generated_at_utc"`
	InputFile      string       `json:"input_file"`
	Hours          int          `json:"hours"`
	Scenarios      []IndexEntry `json:"scenarios"`
}

// WriteIndex persists the aggregated index, written once after all scenarios
// complete.
func WriteIndex(path string, idx *Index) error {
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReadIndex loads a previously written index.
func ReadIndex(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}
