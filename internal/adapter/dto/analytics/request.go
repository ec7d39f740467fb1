package analytics

import "time"

// RollupRequest represents query parameters for an analytics rollup
type RollupRequest struct {
	From   *time.Time `query:"from"`
	To     *time.Time `query:"to"`
	Period string     `query:"period" validate:"omitempty,oneof=daily weekly monthly"`
}

// RecomputeMetricsRequest represents the request to rebuild the persisted
// periodic rollups for an organization
type RecomputeMetricsRequest struct {
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Period string     `json:"period" validate:"omitempty,oneof=daily weekly monthly"`
}
