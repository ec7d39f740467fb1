package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Meeting lifecycle errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrAlreadyStarted  = errors.New("meeting already started")
	ErrNotRunning      = errors.New("meeting is not running")
	ErrAlreadyEnded    = errors.New("meeting already ended")
	ErrMeetingDeleted  = errors.New("meeting has been deleted")
	ErrRoomConflict    = errors.New("room is not available at the specified time")
	ErrNotOrganizer    = errors.New("user is not the meeting organizer")
)

// Cost engine errors
var (
	ErrInvalidWindow     = errors.New("window end is before window start")
	ErrRateResolution    = errors.New("no hourly rate could be resolved and no fallback is configured")
	ErrAlreadyReconciled = errors.New("meeting cost already reconciled")
	ErrCostPersistence   = errors.New("failed to persist reconciled meeting cost")
	ErrTrackerNotFound   = errors.New("no cost tracker is running for this meeting")
)

// Participant errors
var (
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrUnknownParticipant    = errors.New("user is not a participant in this meeting")
	ErrAlreadyParticipant    = errors.New("user already a participant in this meeting")
	ErrCannotRemoveOrganizer = errors.New("cannot remove meeting organizer")
)

// Room errors
var (
	ErrRoomNotFound = errors.New("room not found")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)
