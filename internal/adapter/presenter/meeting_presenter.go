package presenter

import (
	meetingDTO "github.com/meetcost-team/meetcost/internal/adapter/dto/meeting"
	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meetingDTO.MeetingResponse{
		ID:               m.ID.String(),
		OrganizationID:   m.OrganizationID.String(),
		OrganizerID:      m.OrganizerID.String(),
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Location:         m.Location,
		IsOnline:         m.IsOnline,
		ScheduledStartAt: m.ScheduledStartAt,
		ScheduledEndAt:   m.ScheduledEndAt,
		ActualStartAt:    m.ActualStartAt,
		ActualEndAt:      m.ActualEndAt,
		Status:           string(m.Status),
		ExpectedRevenue:  m.ExpectedRevenue,
		Priority:         string(m.Priority),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.RoomID != nil {
		roomID := m.RoomID.String()
		response.RoomID = &roomID
	}
	if m.Room != nil {
		response.RoomName = m.Room.Name
	}

	// Include organizer if loaded
	if m.Organizer != nil {
		response.Organizer = ToUserResponse(m.Organizer)
	}

	return response
}

// ToMeetingListResponse converts a slice of Meeting entities to MeetingListResponse
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int) *meetingDTO.MeetingListResponse {
	responses := make([]*meetingDTO.MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &meetingDTO.MeetingListResponse{
		Meetings:   responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ToParticipantResponse converts a MeetingParticipant entity to ParticipantResponse DTO
func ToParticipantResponse(p *entities.MeetingParticipant) *meetingDTO.ParticipantResponse {
	if p == nil {
		return nil
	}

	response := &meetingDTO.ParticipantResponse{
		ID:                 p.ID.String(),
		MeetingID:          p.MeetingID.String(),
		UserID:             p.UserID.String(),
		Role:               string(p.Role),
		InvitationStatus:   string(p.InvitationStatus),
		AttendanceStatus:   string(p.AttendanceStatus),
		IsRequired:         p.IsRequired,
		HourlyRateOverride: p.HourlyRateOverride,
		JoinedAt:           p.JoinedAt,
		LeftAt:             p.LeftAt,
	}

	if p.User != nil {
		response.User = ToUserResponse(p.User)
	}

	return response
}

// ToParticipantListResponse converts a slice of participants
func ToParticipantListResponse(participants []*entities.MeetingParticipant) []*meetingDTO.ParticipantResponse {
	responses := make([]*meetingDTO.ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = ToParticipantResponse(p)
	}
	return responses
}
