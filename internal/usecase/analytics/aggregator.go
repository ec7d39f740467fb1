package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// Summary is the flat rollup across every meeting in scope
type Summary struct {
	MeetingCount          int      `json:"meeting_count"`
	TotalCost             float64  `json:"total_cost"`
	AverageCost           float64  `json:"average_cost"`
	TotalHours            float64  `json:"total_hours"`
	ParticipantCount      int      `json:"participant_count"`
	AverageEfficiency     float64  `json:"average_efficiency"`
	AverageAttendanceRate float64  `json:"average_attendance_rate"`
	AverageROIPercentage  *float64 `json:"average_roi_percentage,omitempty"` // nil when no meeting had expected revenue
}

// TrendPoint is one bucket of the chronological trend series
type TrendPoint struct {
	PeriodStart       time.Time `json:"period_start"`
	MeetingCount      int       `json:"meeting_count"`
	TotalCost         float64   `json:"total_cost"`
	AverageCost       float64   `json:"average_cost"`
	TotalHours        float64   `json:"total_hours"`
	ParticipantCount  int       `json:"participant_count"`
	AverageEfficiency float64   `json:"average_efficiency"`
}

// GroupRollup aggregates the meetings sharing one department or category
type GroupRollup struct {
	Key               string  `json:"key"`
	MeetingCount      int     `json:"meeting_count"`
	TotalCost         float64 `json:"total_cost"`
	AverageCost       float64 `json:"average_cost"`
	AverageEfficiency float64 `json:"average_efficiency"`
}

// Rollup is the full reporting payload for one organization and window
type Rollup struct {
	Summary     Summary       `json:"summary"`
	Trend       []TrendPoint  `json:"trend"`
	Departments []GroupRollup `json:"departments"`
	Categories  []GroupRollup `json:"categories"`
}

// Aggregate rolls finalized cost and analytics records up into summary,
// trend, department and category views. Pure over its inputs; empty input
// yields a zeroed rollup with empty series, never an error. Records
// missing a matching analytics row are skipped, since the bucket keys
// live there.
func Aggregate(costs []*entities.MeetingCost, analytics []*entities.MeetingAnalytics, period entities.MetricsPeriod) Rollup {
	costByMeeting := make(map[uuid.UUID]*entities.MeetingCost, len(costs))
	for _, c := range costs {
		costByMeeting[c.MeetingID] = c
	}

	var summary Summary
	var effSum, attendSum, roiSum float64
	var roiCount int

	trendIdx := map[time.Time]*TrendPoint{}
	deptIdx := map[string]*GroupRollup{}
	catIdx := map[string]*GroupRollup{}

	for _, a := range analytics {
		totalCost := a.TotalCost
		hours := float64(a.ActualDuration) / 60
		participants := a.AttendedCount
		if c, ok := costByMeeting[a.MeetingID]; ok {
			totalCost = c.TotalCost
			hours = float64(c.ActualDurationMinutes) / 60
			participants = c.ParticipantCount
		}

		summary.MeetingCount++
		summary.TotalCost += totalCost
		summary.TotalHours += hours
		summary.ParticipantCount += participants
		effSum += a.EfficiencyScore
		attendSum += a.AttendanceRate
		if a.ROIPercentage != nil {
			roiSum += *a.ROIPercentage
			roiCount++
		}

		bucket := periodStart(a.MeetingDate, period)
		tp, ok := trendIdx[bucket]
		if !ok {
			tp = &TrendPoint{PeriodStart: bucket}
			trendIdx[bucket] = tp
		}
		tp.MeetingCount++
		tp.TotalCost += totalCost
		tp.TotalHours += hours
		tp.ParticipantCount += participants
		tp.AverageEfficiency += a.EfficiencyScore

		if a.DepartmentID != nil {
			accumulateGroup(deptIdx, a.DepartmentID.String(), totalCost, a.EfficiencyScore)
		}
		if a.Category != "" {
			accumulateGroup(catIdx, a.Category, totalCost, a.EfficiencyScore)
		}
	}

	if summary.MeetingCount > 0 {
		n := float64(summary.MeetingCount)
		summary.AverageCost = summary.TotalCost / n
		summary.AverageEfficiency = effSum / n
		summary.AverageAttendanceRate = attendSum / n
	}
	if roiCount > 0 {
		avg := roiSum / float64(roiCount)
		summary.AverageROIPercentage = &avg
	}

	return Rollup{
		Summary:     summary,
		Trend:       finishTrend(trendIdx),
		Departments: finishGroups(deptIdx),
		Categories:  finishGroups(catIdx),
	}
}

func accumulateGroup(idx map[string]*GroupRollup, key string, cost, efficiency float64) {
	g, ok := idx[key]
	if !ok {
		g = &GroupRollup{Key: key}
		idx[key] = g
	}
	g.MeetingCount++
	g.TotalCost += cost
	g.AverageEfficiency += efficiency
}

func finishTrend(idx map[time.Time]*TrendPoint) []TrendPoint {
	out := make([]TrendPoint, 0, len(idx))
	for _, tp := range idx {
		n := float64(tp.MeetingCount)
		tp.AverageCost = tp.TotalCost / n
		tp.AverageEfficiency /= n
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.Before(out[j].PeriodStart) })
	return out
}

func finishGroups(idx map[string]*GroupRollup) []GroupRollup {
	out := make([]GroupRollup, 0, len(idx))
	for _, g := range idx {
		n := float64(g.MeetingCount)
		g.AverageCost = g.TotalCost / n
		g.AverageEfficiency /= n
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost > out[j].TotalCost
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// periodStart maps a meeting date onto its rollup bucket: the day itself,
// the Monday of its week, or the first of its month.
func periodStart(date time.Time, period entities.MetricsPeriod) time.Time {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	switch period {
	case entities.MetricsPeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday-based week
		return day.AddDate(0, 0, -offset)
	case entities.MetricsPeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, date.Location())
	default:
		return day
	}
}
