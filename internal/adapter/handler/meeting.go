package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/errors"
	meetingDTO "github.com/meetcost-team/meetcost/internal/adapter/dto/meeting"
	"github.com/meetcost-team/meetcost/internal/adapter/presenter"
	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
	"github.com/meetcost-team/meetcost/internal/infrastructure/http/middleware"
	meetingUsecase "github.com/meetcost-team/meetcost/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// identity pulls the authenticated identity out of the request context
func identity(c echo.Context) (orgID, userID uuid.UUID, err error) {
	orgID, ok := middleware.OrganizationID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.ErrUnauthenticated()
	}
	userID, ok = middleware.UserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.ErrUnauthenticated()
	}
	return orgID, userID, nil
}

// meetingID parses the :id path parameter
func meetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("meeting ID must be a valid UUID")
	}
	return id, nil
}

// CreateMeeting handles POST /meetings
// @Summary      Schedule a meeting
// @Description  Schedules a new meeting with its invited participants
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201      {object}  meeting.MeetingResponse  "Meeting scheduled"
// @Failure      400      {object}  map[string]interface{}   "Invalid request or window"
// @Failure      409      {object}  map[string]interface{}   "Room conflict"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.CreateMeetingInput{
		OrganizationID:   orgID,
		OrganizerID:      userID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Location:         req.Location,
		IsOnline:         req.IsOnline,
		ScheduledStartAt: req.ScheduledStartAt,
		ScheduledEndAt:   req.ScheduledEndAt,
		ExpectedRevenue:  req.ExpectedRevenue,
		Priority:         entities.MeetingPriority(req.Priority),
	}

	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("room ID must be a valid UUID"))
		}
		input.RoomID = &roomID
	}

	for _, item := range req.Participants {
		participantID, err := uuid.Parse(item.UserID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("participant user ID must be a valid UUID"))
		}
		role := entities.ParticipantRole(item.Role)
		if role == "" {
			role = entities.ParticipantRoleParticipant
		}
		input.Participants = append(input.Participants, meetingUsecase.ParticipantInput{
			UserID:             participantID,
			Role:               role,
			IsRequired:         item.IsRequired,
			HourlyRateOverride: item.HourlyRateOverride,
		})
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, ""))
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting details"
// @Failure      404  {object}  map[string]interface{}   "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), orgID, id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Gets a paginated list of the organization's meetings with optional filters
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Status filter (scheduled/in_progress/completed/cancelled)"
// @Param        organizer  query     string  false  "Organizer user ID"
// @Param        category   query     string  false  "Category filter"
// @Param        search     query     string  false  "Search in title and description"
// @Param        page       query     int     false  "Page number (default: 1)"
// @Param        page_size  query     int     false  "Items per page (default: 20)"
// @Success      200        {object}  meeting.MeetingListResponse  "List of meetings"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// Set defaults
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	filters := repositories.MeetingFilters{
		Category:  req.Category,
		Search:    req.Search,
		From:      req.From,
		To:        req.To,
		Limit:     req.PageSize,
		Offset:    (req.Page - 1) * req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		filters.Status = &status
	}
	if req.Organizer != nil {
		organizerID, err := uuid.Parse(*req.Organizer)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("organizer ID must be a valid UUID"))
		}
		filters.OrganizerID = &organizerID
	}

	meetings, total, err := h.meetingService.ListMeetings(c.Request().Context(), orgID, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingListResponse(meetings, total, req.Page, req.PageSize))
}

// UpdateMeeting handles PUT /meetings/:id
// @Summary      Update a scheduled meeting
// @Description  Updates a scheduled meeting; only the organizer may do this
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to update"
// @Success      200      {object}  meeting.MeetingResponse  "Updated meeting"
// @Failure      403      {object}  map[string]interface{}   "Not the organizer"
// @Router       /meetings/{id} [put]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateMeetingInput{
		OrganizationID:   orgID,
		MeetingID:        id,
		RequesterID:      userID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		ScheduledStartAt: req.ScheduledStartAt,
		ScheduledEndAt:   req.ScheduledEndAt,
		ExpectedRevenue:  req.ExpectedRevenue,
	}

	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("room ID must be a valid UUID"))
		}
		input.RoomID = &roomID
	}
	if req.Priority != nil {
		priority := entities.MeetingPriority(*req.Priority)
		input.Priority = &priority
	}

	m, err := h.meetingService.UpdateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a scheduled meeting
// @Tags         Meetings
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID (UUID)"
// @Success      204 "Meeting deleted"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), orgID, id, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}

// GetParticipants handles GET /meetings/:id/participants
// @Summary      List meeting participants
// @Tags         Participants
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID (UUID)"
// @Success      200 {array} meeting.ParticipantResponse "Participants"
// @Router       /meetings/{id}/participants [get]
func (h *Meeting) GetParticipants(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participants, err := h.meetingService.GetParticipants(c.Request().Context(), orgID, id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToParticipantListResponse(participants))
}

// AddParticipant handles POST /meetings/:id/participants
// @Summary      Invite a participant
// @Description  Invites a user to the meeting; only the organizer may do this
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Meeting ID (UUID)"
// @Param        request  body      meeting.AddParticipantRequest  true  "Participant to invite"
// @Success      201      {object}  meeting.ParticipantResponse  "Participant invited"
// @Failure      409      {object}  map[string]interface{}       "Already invited"
// @Router       /meetings/{id}/participants [post]
func (h *Meeting) AddParticipant(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AddParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, requesterID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participantID, err := uuid.Parse(req.UserID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user ID must be a valid UUID"))
	}

	role := entities.ParticipantRole(req.Role)
	if role == "" {
		role = entities.ParticipantRoleParticipant
	}

	p, err := h.meetingService.AddParticipant(c.Request().Context(), meetingUsecase.AddParticipantInput{
		OrganizationID:     orgID,
		MeetingID:          id,
		RequesterID:        requesterID,
		UserID:             participantID,
		Role:               role,
		IsRequired:         req.IsRequired,
		HourlyRateOverride: req.HourlyRateOverride,
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToParticipantResponse(p))
}

// UpdateParticipant handles PUT /meetings/:id/participants/:userId
// @Summary      Update a participant
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Meeting ID (UUID)"
// @Param        userId   path      string  true  "User ID (UUID)"
// @Param        request  body      meeting.UpdateParticipantRequest  true  "Fields to update"
// @Success      200      {object}  meeting.ParticipantResponse  "Updated participant"
// @Router       /meetings/{id}/participants/{userId} [put]
func (h *Meeting) UpdateParticipant(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user ID must be a valid UUID"))
	}

	var req meetingDTO.UpdateParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, requesterID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateParticipantInput{
		OrganizationID:     orgID,
		MeetingID:          id,
		RequesterID:        requesterID,
		UserID:             targetID,
		IsRequired:         req.IsRequired,
		HourlyRateOverride: req.HourlyRateOverride,
	}

	if req.Role != nil {
		role := entities.ParticipantRole(*req.Role)
		input.Role = &role
	}
	if req.InvitationStatus != nil {
		status := entities.InvitationStatus(*req.InvitationStatus)
		input.InvitationStatus = &status
	}

	p, err := h.meetingService.UpdateParticipant(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToParticipantResponse(p))
}

// RemoveParticipant handles DELETE /meetings/:id/participants/:userId
// @Summary      Uninvite a participant
// @Description  Removes a user from the roster; the organizer cannot be removed
// @Tags         Participants
// @Security     BearerAuth
// @Param        id      path  string  true  "Meeting ID (UUID)"
// @Param        userId  path  string  true  "User ID (UUID)"
// @Success      204 "Participant removed"
// @Router       /meetings/{id}/participants/{userId} [delete]
func (h *Meeting) RemoveParticipant(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user ID must be a valid UUID"))
	}

	orgID, requesterID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.RemoveParticipant(c.Request().Context(), orgID, id, requesterID, targetID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}
