package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/internal/adapter/presenter"
	meetingUsecase "github.com/meetcost-team/meetcost/internal/usecase/meeting"
)

// Cost handles meeting lifecycle and cost HTTP requests
type Cost struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewCostHandler creates a new cost handler
func NewCostHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Cost {
	return &Cost{
		meetingService: meetingService,
		logger:         logger,
	}
}

// StartMeeting handles POST /meetings/:id/start
// @Summary      Start a meeting
// @Description  Transitions the meeting to in progress and starts the cost
// @Description  tracker with rate snapshots of the invited roster
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting started"
// @Failure      400  {object}  map[string]interface{}   "Already started or ended"
// @Failure      403  {object}  map[string]interface{}   "Not the organizer"
// @Router       /meetings/{id}/start [post]
func (h *Cost) StartMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.StartMeeting(c.Request().Context(), orgID, id, userID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// JoinMeeting handles POST /meetings/:id/join
// @Summary      Join a running meeting
// @Description  Records the caller joining; users not on the roster are
// @Description  admitted as walk-ins at the fallback rate
// @Tags         Lifecycle
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID (UUID)"
// @Success      204 "Join recorded"
// @Failure      400 {object} map[string]interface{} "Meeting is not running"
// @Router       /meetings/{id}/join [post]
func (h *Cost) JoinMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.JoinMeeting(c.Request().Context(), orgID, id, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}

// LeaveMeeting handles POST /meetings/:id/leave
// @Summary      Leave a running meeting
// @Tags         Lifecycle
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID (UUID)"
// @Success      204 "Leave recorded"
// @Router       /meetings/{id}/leave [post]
func (h *Cost) LeaveMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.LeaveMeeting(c.Request().Context(), orgID, id, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}

// EndMeeting handles POST /meetings/:id/end
// @Summary      End a meeting and reconcile its cost
// @Description  Ends the meeting and writes the final, immutable cost record.
// @Description  On a transient persistence failure the meeting stays in
// @Description  progress and the call can be retried.
// @Tags         Lifecycle
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  cost.CostResponse  "Final cost record"
// @Failure      403  {object}  map[string]interface{}  "Not the organizer"
// @Failure      409  {object}  map[string]interface{}  "Already reconciled"
// @Router       /meetings/{id}/end [post]
func (h *Cost) EndMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	finalCost, _, err := h.meetingService.EndMeeting(c.Request().Context(), orgID, id, userID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCostResponse(finalCost))
}

// CancelMeeting handles POST /meetings/:id/cancel
// @Summary      Cancel a meeting
// @Description  Cancels the meeting; a running tracker is discarded without
// @Description  producing a cost record
// @Tags         Lifecycle
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID (UUID)"
// @Success      204 "Meeting cancelled"
// @Router       /meetings/{id}/cancel [post]
func (h *Cost) CancelMeeting(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, userID, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.CancelMeeting(c.Request().Context(), orgID, id, userID); err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}

// GetRunningCost handles GET /meetings/:id/cost/live
// @Summary      Get the live cost of a running meeting
// @Tags         Costs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  cost.RunningCostResponse  "Live cost snapshot"
// @Failure      400  {object}  map[string]interface{}    "Meeting is not running"
// @Router       /meetings/{id}/cost/live [get]
func (h *Cost) GetRunningCost(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	rc, err := h.meetingService.GetRunningCost(c.Request().Context(), orgID, id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRunningCostResponse(rc))
}

// GetMeetingCost handles GET /meetings/:id/cost
// @Summary      Get the finalized cost record of a completed meeting
// @Tags         Costs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  cost.CostResponse  "Final cost record"
// @Failure      404  {object}  map[string]interface{}  "No cost record yet"
// @Router       /meetings/{id}/cost [get]
func (h *Cost) GetMeetingCost(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	finalCost, err := h.meetingService.GetMeetingCost(c.Request().Context(), orgID, id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCostResponse(finalCost))
}

// RecomputeCost handles POST /meetings/:id/cost/recompute
// @Summary      Recompute a finalized cost record
// @Description  Administrative overwrite: rebuilds the cost record from the
// @Description  persisted presence sessions and flags it as recomputed
// @Tags         Costs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  cost.CostResponse  "Recomputed cost record"
// @Router       /meetings/{id}/cost/recompute [post]
func (h *Cost) RecomputeCost(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	orgID, _, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	finalCost, err := h.meetingService.RecomputeCost(c.Request().Context(), orgID, id)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCostResponse(finalCost))
}
