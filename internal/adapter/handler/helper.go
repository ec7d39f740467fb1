package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/errors"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	// Non-AppError => internal server error
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// mapMeetingError translates usecase sentinels into AppErrors so the
// response carries the right HTTP status and error code. Unknown errors
// pass through and become 500s.
func mapMeetingError(err error, meetingID string) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyStarted):
		return errors.ErrMeetingAlreadyStarted(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrNotRunning):
		return errors.ErrMeetingNotRunning(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyEnded):
		return errors.ErrMeetingAlreadyEnded(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrRoomConflict):
		return errors.ErrRoomConflict("")
	case stdErrors.Is(err, usecaseErrors.ErrNotOrganizer):
		return errors.ErrForbidden("only the organizer may perform this action")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidWindow):
		return errors.ErrInvalidWindow(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyReconciled):
		return errors.ErrAlreadyReconciled(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrCostPersistence):
		return errors.ErrCostPersistenceFailed(meetingID, err)
	case stdErrors.Is(err, usecaseErrors.ErrTrackerNotFound):
		return errors.ErrMeetingNotRunning(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound):
		return errors.ErrParticipantNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrUnknownParticipant):
		return errors.ErrUnknownParticipant("")
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyParticipant):
		return errors.ErrAlreadyInvited("")
	case stdErrors.Is(err, usecaseErrors.ErrCannotRemoveOrganizer):
		return errors.ErrForbidden("the organizer cannot be removed from the meeting")
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrNotFound("user")
	case stdErrors.Is(err, usecaseErrors.ErrRoomNotFound):
		return errors.ErrNotFound("room")
	default:
		return err
	}
}

// bindAndValidate binds the request payload and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}
