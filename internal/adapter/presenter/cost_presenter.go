package presenter

import (
	"encoding/json"
	"sort"

	costDTO "github.com/meetcost-team/meetcost/internal/adapter/dto/cost"
	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

// ToRunningCostResponse converts a live tracker snapshot to its DTO
func ToRunningCostResponse(rc tracker.RunningCost) *costDTO.RunningCostResponse {
	return &costDTO.RunningCostResponse{
		MeetingID:        rc.MeetingID.String(),
		ElapsedSeconds:   int64(rc.ElapsedSeconds),
		CurrentCost:      rc.CurrentCost,
		DirectCost:       rc.DirectCost,
		IndirectCost:     rc.IndirectCost,
		ParticipantCount: rc.ParticipantCount,
		ComputedAt:       rc.ComputedAt,
	}
}

// ToCostResponse converts a MeetingCost entity to CostResponse DTO
func ToCostResponse(c *entities.MeetingCost) *costDTO.CostResponse {
	if c == nil {
		return nil
	}

	response := &costDTO.CostResponse{
		ID:                       c.ID.String(),
		MeetingID:                c.MeetingID.String(),
		TotalCost:                c.TotalCost,
		DirectCost:               c.DirectCost,
		IndirectCost:             c.IndirectCost,
		ParticipantCount:         c.ParticipantCount,
		ActualDurationMinutes:    c.ActualDurationMinutes,
		ScheduledDurationMinutes: c.ScheduledDurationMinutes,
		AverageHourlyRate:        c.AverageHourlyRate,
		CostPerMinute:            c.CostPerMinute,
		EfficiencyScore:          c.EfficiencyScore,
		ROIPercentage:            c.ROIPercentage,
		Recomputed:               c.Recomputed,
		CreatedAt:                c.CreatedAt,
	}

	// Decode the stored breakdown; a record without one is still servable
	if len(c.CostBreakdown) > 0 {
		var breakdown entities.CostBreakdown
		if err := json.Unmarshal(c.CostBreakdown, &breakdown); err == nil {
			response.Breakdown = toBreakdownResponse(&breakdown)
		}
	}

	return response
}

func toBreakdownResponse(b *entities.CostBreakdown) *costDTO.BreakdownResponse {
	lines := make([]costDTO.ParticipantCostLine, 0, len(b.Participants))
	for userID, entry := range b.Participants {
		lines = append(lines, costDTO.ParticipantCostLine{
			UserID:     userID,
			HourlyRate: entry.HourlyRate,
			Minutes:    entry.Minutes,
			Cost:       entry.Cost,
		})
	}
	// Stable ordering for clients
	sort.Slice(lines, func(i, j int) bool { return lines[i].UserID < lines[j].UserID })

	return &costDTO.BreakdownResponse{
		Participants: lines,
		Room:         b.Room,
		Equipment:    b.Equipment,
		Other:        b.Other,
	}
}
