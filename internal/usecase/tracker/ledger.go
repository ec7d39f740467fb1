package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/usecase/costing"
)

// Ledger records the presence sessions of one meeting. Each participant
// has at most one open session at a time; a join while a session is open
// is a no-op, as is a leave without an open session, so duplicate device
// reports never corrupt the record.
//
// Ledger is not safe for concurrent use; the owning Tracker serializes
// access.
type Ledger struct {
	sessions []costing.Session
	open     map[uuid.UUID]int // participant -> index of open session
}

// NewLedger creates an empty presence ledger.
func NewLedger() *Ledger {
	return &Ledger{open: make(map[uuid.UUID]int)}
}

// Join opens a session for the participant. Returns false when a session
// is already open and nothing changed.
func (l *Ledger) Join(participantID uuid.UUID, at time.Time) bool {
	if _, ok := l.open[participantID]; ok {
		return false
	}
	l.sessions = append(l.sessions, costing.Session{
		ParticipantID: participantID,
		JoinedAt:      at,
	})
	l.open[participantID] = len(l.sessions) - 1
	return true
}

// Leave closes the participant's open session. Returns false when no
// session was open. A leave time before the join time is clamped to the
// join time, producing a zero-length session rather than a negative one.
func (l *Ledger) Leave(participantID uuid.UUID, at time.Time) bool {
	idx, ok := l.open[participantID]
	if !ok {
		return false
	}
	s := &l.sessions[idx]
	if at.Before(s.JoinedAt) {
		at = s.JoinedAt
	}
	left := at
	s.LeftAt = &left
	delete(l.open, participantID)
	return true
}

// CloseAll closes every open session at the given time. Used when the
// meeting ends before everyone has left.
func (l *Ledger) CloseAll(at time.Time) int {
	closed := 0
	for id := range l.open {
		if l.Leave(id, at) {
			closed++
		}
	}
	return closed
}

// PresentCount returns how many participants currently have an open
// session.
func (l *Ledger) PresentCount() int {
	return len(l.open)
}

// IsPresent reports whether the participant has an open session.
func (l *Ledger) IsPresent(participantID uuid.UUID) bool {
	_, ok := l.open[participantID]
	return ok
}

// Sessions returns a copy of all recorded sessions, open ones included.
func (l *Ledger) Sessions() []costing.Session {
	out := make([]costing.Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// restoreSessions rebuilds ledger state from persisted sessions, used by
// crash recovery. Open sessions become open again.
func (l *Ledger) restoreSessions(sessions []costing.Session) {
	l.sessions = make([]costing.Session, len(sessions))
	copy(l.sessions, sessions)
	for i, s := range l.sessions {
		if s.LeftAt == nil {
			l.open[s.ParticipantID] = i
		}
	}
}
