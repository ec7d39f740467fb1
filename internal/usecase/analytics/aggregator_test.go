package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

func fptr(v float64) *float64 { return &v }

func record(date time.Time, totalCost float64, minutes, attended int, efficiency float64) (*entities.MeetingCost, *entities.MeetingAnalytics) {
	id := uuid.New()
	cost := &entities.MeetingCost{
		MeetingID:             id,
		TotalCost:             totalCost,
		ActualDurationMinutes: minutes,
		ParticipantCount:      attended,
	}
	analytics := &entities.MeetingAnalytics{
		MeetingID:       id,
		MeetingDate:     date,
		TotalCost:       totalCost,
		ActualDuration:  minutes,
		AttendedCount:   attended,
		AttendanceRate:  1,
		EfficiencyScore: efficiency,
	}
	return cost, analytics
}

func TestAggregate_EmptyInputYieldsZeroRollup(t *testing.T) {
	rollup := Aggregate(nil, nil, entities.MetricsPeriodDaily)

	assert.Zero(t, rollup.Summary.MeetingCount)
	assert.Zero(t, rollup.Summary.TotalCost)
	assert.Nil(t, rollup.Summary.AverageROIPercentage)
	assert.Empty(t, rollup.Trend)
	assert.Empty(t, rollup.Departments)
	assert.Empty(t, rollup.Categories)
}

func TestAggregate_Summary(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c1, a1 := record(day, 10000, 60, 4, 0.8)
	c2, a2 := record(day.AddDate(0, 0, 1), 20000, 120, 6, 0.6)
	a2.ROIPercentage = fptr(50)

	rollup := Aggregate(
		[]*entities.MeetingCost{c1, c2},
		[]*entities.MeetingAnalytics{a1, a2},
		entities.MetricsPeriodDaily,
	)

	s := rollup.Summary
	assert.Equal(t, 2, s.MeetingCount)
	assert.InDelta(t, 30000.0, s.TotalCost, 1e-9)
	assert.InDelta(t, 15000.0, s.AverageCost, 1e-9)
	assert.InDelta(t, 3.0, s.TotalHours, 1e-9)
	assert.Equal(t, 10, s.ParticipantCount)
	assert.InDelta(t, 0.7, s.AverageEfficiency, 1e-9)
	require.NotNil(t, s.AverageROIPercentage)
	assert.InDelta(t, 50.0, *s.AverageROIPercentage, 1e-9)
}

func TestAggregate_DailyTrendIsChronological(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c1, a1 := record(day.AddDate(0, 0, 2), 3000, 30, 2, 0.9)
	c2, a2 := record(day, 1000, 30, 2, 0.9)
	c3, a3 := record(day, 2000, 30, 2, 0.7)

	rollup := Aggregate(
		[]*entities.MeetingCost{c1, c2, c3},
		[]*entities.MeetingAnalytics{a1, a2, a3},
		entities.MetricsPeriodDaily,
	)

	require.Len(t, rollup.Trend, 2)
	assert.Equal(t, day, rollup.Trend[0].PeriodStart)
	assert.Equal(t, 2, rollup.Trend[0].MeetingCount)
	assert.InDelta(t, 3000.0, rollup.Trend[0].TotalCost, 1e-9)
	assert.InDelta(t, 0.8, rollup.Trend[0].AverageEfficiency, 1e-9)
	assert.Equal(t, day.AddDate(0, 0, 2), rollup.Trend[1].PeriodStart)
}

func TestAggregate_WeeklyAndMonthlyBuckets(t *testing.T) {
	// Wednesday March 4th 2026; its week starts Monday March 2nd
	wed := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	c, a := record(wed, 1000, 30, 1, 1)

	weekly := Aggregate([]*entities.MeetingCost{c}, []*entities.MeetingAnalytics{a}, entities.MetricsPeriodWeekly)
	require.Len(t, weekly.Trend, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), weekly.Trend[0].PeriodStart)

	monthly := Aggregate([]*entities.MeetingCost{c}, []*entities.MeetingAnalytics{a}, entities.MetricsPeriodMonthly)
	require.Len(t, monthly.Trend, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), monthly.Trend[0].PeriodStart)
}

func TestAggregate_DepartmentAndCategoryRollups(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deptA := uuid.New()
	deptB := uuid.New()

	c1, a1 := record(day, 5000, 60, 3, 0.8)
	a1.DepartmentID = &deptA
	a1.Category = "standup"
	c2, a2 := record(day, 9000, 60, 3, 0.6)
	a2.DepartmentID = &deptB
	a2.Category = "planning"
	c3, a3 := record(day, 1000, 60, 3, 1)
	a3.Category = "standup" // no department

	rollup := Aggregate(
		[]*entities.MeetingCost{c1, c2, c3},
		[]*entities.MeetingAnalytics{a1, a2, a3},
		entities.MetricsPeriodDaily,
	)

	require.Len(t, rollup.Departments, 2)
	assert.Equal(t, deptB.String(), rollup.Departments[0].Key) // sorted by cost desc
	assert.InDelta(t, 9000.0, rollup.Departments[0].TotalCost, 1e-9)

	require.Len(t, rollup.Categories, 2)
	assert.Equal(t, "planning", rollup.Categories[0].Key)
	assert.Equal(t, 2, rollup.Categories[1].MeetingCount)
	assert.InDelta(t, 6000.0, rollup.Categories[1].TotalCost, 1e-9)
	assert.InDelta(t, 0.9, rollup.Categories[1].AverageEfficiency, 1e-9)
}

func TestAggregate_AnalyticsWithoutCostRowUsesItsOwnFacts(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, a := record(day, 7500, 90, 5, 0.5)

	rollup := Aggregate(nil, []*entities.MeetingAnalytics{a}, entities.MetricsPeriodDaily)

	assert.Equal(t, 1, rollup.Summary.MeetingCount)
	assert.InDelta(t, 7500.0, rollup.Summary.TotalCost, 1e-9)
	assert.InDelta(t, 1.5, rollup.Summary.TotalHours, 1e-9)
}
