package models

// ErrorResponse is the JSON error envelope for all API endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScenarioInfo is a discovery entry returned by the scenario list endpoint.
// Fields beyond id/label/source/path are only populated when the scenario
// came from the sweep index.
type ScenarioInfo struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Source string `json:"source"`
	Path   string `json:"path"`

	MinNonFossilShare                   *float64 `json:"min_non_fossil_share,omitempty"`
	ThresholdNonFossilShare             *float64 `json:"threshold_non_fossil_share,omitempty"`
	EnforcedMinNonFossilShare           *float64 `json:"enforced_min_non_fossil_share,omitempty"`
	AchievedNonFossilShare              *float64 `json:"achieved_non_fossil_share,omitempty"`
	AchievedNonFossilShareServedPrimary *float64 `json:"achieved_non_fossil_share_served_primary,omitempty"`
	AchievedFossilShareServedPrimary    *float64 `json:"achieved_fossil_share_served_primary,omitempty"`
	AchievedSolarShareServed            *float64 `json:"achieved_solar_share_served,omitempty"`
	Status                              string   `json:"status,omitempty"`
	LCOEUSDPerMWhServed                 *float64 `json:"lcoe_usd_per_mwh_served,omitempty"`
}

// ScenarioListResponse wraps the discovery list.
type ScenarioListResponse struct {
	Scenarios []ScenarioInfo `json:"scenarios"`
}
