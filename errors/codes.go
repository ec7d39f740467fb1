package errors

// ErrorCode identifies a class of application error
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED

	// Meeting lifecycle
	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_ALREADY_STARTED
	ErrorCode_MEETING_NOT_RUNNING
	ErrorCode_MEETING_ALREADY_ENDED
	ErrorCode_MEETING_ROOM_CONFLICT

	// Cost engine
	ErrorCode_COST_INVALID_WINDOW
	ErrorCode_COST_RATE_RESOLUTION
	ErrorCode_COST_ALREADY_RECONCILED
	ErrorCode_COST_PERSISTENCE_FAILED

	// Participants
	ErrorCode_PARTICIPANT_NOT_FOUND
	ErrorCode_PARTICIPANT_UNKNOWN
	ErrorCode_PARTICIPANT_ALREADY_INVITED

	// Database
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_CONSTRAINT_VIOLATION
)

// ErrorCode_HTTP_OK marks a successful response envelope
const ErrorCode_HTTP_OK ErrorCode = 200

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                     "UNKNOWN",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                   "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:              "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:           "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:             "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                   "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:          "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:          "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:           "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ALREADY_STARTED:     "MEETING_ALREADY_STARTED",
	ErrorCode_MEETING_NOT_RUNNING:         "MEETING_NOT_RUNNING",
	ErrorCode_MEETING_ALREADY_ENDED:       "MEETING_ALREADY_ENDED",
	ErrorCode_MEETING_ROOM_CONFLICT:       "MEETING_ROOM_CONFLICT",
	ErrorCode_COST_INVALID_WINDOW:         "COST_INVALID_WINDOW",
	ErrorCode_COST_RATE_RESOLUTION:        "COST_RATE_RESOLUTION",
	ErrorCode_COST_ALREADY_RECONCILED:     "COST_ALREADY_RECONCILED",
	ErrorCode_COST_PERSISTENCE_FAILED:     "COST_PERSISTENCE_FAILED",
	ErrorCode_PARTICIPANT_NOT_FOUND:       "PARTICIPANT_NOT_FOUND",
	ErrorCode_PARTICIPANT_UNKNOWN:         "PARTICIPANT_UNKNOWN",
	ErrorCode_PARTICIPANT_ALREADY_INVITED: "PARTICIPANT_ALREADY_INVITED",
	ErrorCode_DB_CONNECTION_FAILED:        "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:             "DB_QUERY_FAILED",
	ErrorCode_DB_CONSTRAINT_VIOLATION:     "DB_CONSTRAINT_VIOLATION",
	ErrorCode_HTTP_OK:                     "HTTP_OK",
}

// String returns the canonical name of the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
