package tracker

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestLedger_JoinIsIdempotent(t *testing.T) {
	l := NewLedger()
	id := uuid.New()

	assert.True(t, l.Join(id, baseTime))
	assert.False(t, l.Join(id, baseTime.Add(time.Minute)))
	assert.Equal(t, 1, l.PresentCount())
	assert.Len(t, l.Sessions(), 1)
}

func TestLedger_LeaveWithoutOpenSessionIsNoop(t *testing.T) {
	l := NewLedger()

	assert.False(t, l.Leave(uuid.New(), baseTime))
	assert.Empty(t, l.Sessions())
}

func TestLedger_RejoinOpensSecondSession(t *testing.T) {
	l := NewLedger()
	id := uuid.New()

	l.Join(id, baseTime)
	l.Leave(id, baseTime.Add(10*time.Minute))
	l.Join(id, baseTime.Add(20*time.Minute))

	sessions := l.Sessions()
	assert.Len(t, sessions, 2)
	assert.NotNil(t, sessions[0].LeftAt)
	assert.Nil(t, sessions[1].LeftAt)
	assert.True(t, l.IsPresent(id))
}

func TestLedger_LeaveBeforeJoinClampedToJoin(t *testing.T) {
	l := NewLedger()
	id := uuid.New()

	l.Join(id, baseTime)
	assert.True(t, l.Leave(id, baseTime.Add(-time.Minute)))

	s := l.Sessions()[0]
	assert.Equal(t, s.JoinedAt, *s.LeftAt)
}

func TestLedger_CloseAll(t *testing.T) {
	l := NewLedger()
	a, b := uuid.New(), uuid.New()

	l.Join(a, baseTime)
	l.Join(b, baseTime.Add(5*time.Minute))
	l.Leave(a, baseTime.Add(10*time.Minute))

	closed := l.CloseAll(baseTime.Add(30 * time.Minute))

	assert.Equal(t, 1, closed)
	assert.Zero(t, l.PresentCount())
	for _, s := range l.Sessions() {
		assert.NotNil(t, s.LeftAt)
	}
}
