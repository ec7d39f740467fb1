package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestResolve_PrecedenceOrder(t *testing.T) {
	table := NewRateTable(4000)

	rate, err := table.Resolve(Participant{
		OverrideHourlyRate: fptr(12000),
		PersonalHourlyRate: fptr(9000),
		RoleDefaultRate:    fptr(6000),
	})
	assert.NoError(t, err)
	assert.Equal(t, 12000.0, rate)

	rate, err = table.Resolve(Participant{
		PersonalHourlyRate: fptr(9000),
		RoleDefaultRate:    fptr(6000),
	})
	assert.NoError(t, err)
	assert.Equal(t, 9000.0, rate)

	rate, err = table.Resolve(Participant{
		RoleDefaultRate: fptr(6000),
	})
	assert.NoError(t, err)
	assert.Equal(t, 6000.0, rate)

	rate, err = table.Resolve(Participant{})
	assert.NoError(t, err)
	assert.Equal(t, 4000.0, rate)
}

func TestResolve_SkipsNonPositiveRates(t *testing.T) {
	table := NewRateTable(4000)

	rate, err := table.Resolve(Participant{
		OverrideHourlyRate: fptr(0),
		PersonalHourlyRate: fptr(-500),
		RoleDefaultRate:    fptr(6000),
	})
	assert.NoError(t, err)
	assert.Equal(t, 6000.0, rate)
}

func TestNewRateTable_DefaultsNonPositiveFallback(t *testing.T) {
	table := NewRateTable(0)

	rate, err := table.Resolve(Participant{})
	assert.NoError(t, err)
	assert.Equal(t, float64(DefaultFallbackHourlyRate), rate)
}

func TestRateFunc_WalkInGetsFallback(t *testing.T) {
	table := NewRateTable(4000)
	known := uuid.New()

	rateOf := table.RateFunc([]Participant{
		{ID: known, PersonalHourlyRate: fptr(8000)},
	})

	assert.Equal(t, 8000.0, rateOf(known))
	assert.Equal(t, 4000.0, rateOf(uuid.New()))
}
