package costing

import (
	"github.com/google/uuid"

	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// DefaultFallbackHourlyRate is the organization-wide fallback applied when a
// participant has no override, no personal rate and no role default.
const DefaultFallbackHourlyRate = 4000

// Participant is an immutable rate snapshot of one attendee, captured when
// the tracker starts so that later role or rate changes do not affect the
// cost of a meeting that already happened.
type Participant struct {
	ID                 uuid.UUID
	DisplayName        string
	OverrideHourlyRate *float64 // per-meeting-participation override
	PersonalHourlyRate *float64 // user's personal rate
	RoleDefaultRate    *float64 // role default
	Required           bool
	DepartmentID       *uuid.UUID
}

// RateTable resolves hourly compensation rates from participant snapshots.
// The zero value is unusable; construct with NewRateTable.
type RateTable struct {
	fallbackHourlyRate float64
}

// NewRateTable creates a rate table with the given fallback rate. A
// non-positive fallback is replaced by DefaultFallbackHourlyRate.
func NewRateTable(fallbackHourlyRate float64) RateTable {
	if fallbackHourlyRate <= 0 {
		fallbackHourlyRate = DefaultFallbackHourlyRate
	}
	return RateTable{fallbackHourlyRate: fallbackHourlyRate}
}

// Resolve returns the applicable hourly rate for a participant.
// Precedence: participation override > personal rate > role default >
// fallback. Rates that are unset or non-positive are skipped. Fails only
// when the fallback itself is misconfigured.
func (t RateTable) Resolve(p Participant) (float64, error) {
	if p.OverrideHourlyRate != nil && *p.OverrideHourlyRate > 0 {
		return *p.OverrideHourlyRate, nil
	}
	if p.PersonalHourlyRate != nil && *p.PersonalHourlyRate > 0 {
		return *p.PersonalHourlyRate, nil
	}
	if p.RoleDefaultRate != nil && *p.RoleDefaultRate > 0 {
		return *p.RoleDefaultRate, nil
	}
	if t.fallbackHourlyRate <= 0 {
		return 0, usecaseErrors.ErrRateResolution
	}
	return t.fallbackHourlyRate, nil
}

// RateFunc builds a lookup over a fixed participant set. Unknown IDs
// resolve to the fallback rate, which is the walk-in attendee policy.
func (t RateTable) RateFunc(participants []Participant) func(uuid.UUID) float64 {
	rates := make(map[uuid.UUID]float64, len(participants))
	for _, p := range participants {
		rate, err := t.Resolve(p)
		if err != nil {
			rate = DefaultFallbackHourlyRate
		}
		rates[p.ID] = rate
	}
	return func(id uuid.UUID) float64 {
		if rate, ok := rates[id]; ok {
			return rate
		}
		return t.fallbackHourlyRate
	}
}
