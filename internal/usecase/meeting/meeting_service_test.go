package meeting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

// Mocks

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Meeting, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingRepository) List(ctx context.Context, organizationID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	args := m.Called(ctx, organizationID, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Meeting), args.Get(1).(int64), args.Error(2)
}

func (m *MockMeetingRepository) HasRoomConflict(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeMeetingID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeMeetingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMeetingRepository) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	args := m.Called(ctx, meetingID, status)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindInProgress(ctx context.Context) ([]*entities.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Meeting), args.Error(1)
}

type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(ctx context.Context, p *entities.MeetingParticipant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParticipantRepository) CreateBatch(ctx context.Context, ps []*entities.MeetingParticipant) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MeetingParticipant), args.Error(1)
}

func (m *MockParticipantRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	args := m.Called(ctx, meetingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MeetingParticipant), args.Error(1)
}

func (m *MockParticipantRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MeetingParticipant), args.Error(1)
}

func (m *MockParticipantRepository) Update(ctx context.Context, p *entities.MeetingParticipant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockParticipantRepository) CountByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPresenceRepository struct {
	mock.Mock
}

func (m *MockPresenceRepository) Create(ctx context.Context, s *entities.PresenceSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPresenceRepository) Update(ctx context.Context, s *entities.PresenceSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPresenceRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.PresenceSession, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PresenceSession), args.Error(1)
}

func (m *MockPresenceRepository) FindOpenByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.PresenceSession, error) {
	args := m.Called(ctx, meetingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PresenceSession), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, r *entities.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, r *entities.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*entities.Room, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Room), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockCostRepository struct {
	mock.Mock
}

func (m *MockCostRepository) Create(ctx context.Context, c *entities.MeetingCost) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCostRepository) Overwrite(ctx context.Context, c *entities.MeetingCost) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCostRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingCost, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MeetingCost), args.Error(1)
}

func (m *MockCostRepository) ExistsForMeeting(ctx context.Context, meetingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, meetingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCostRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingCost, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MeetingCost), args.Error(1)
}

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Create(ctx context.Context, a *entities.MeetingAnalytics) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) Overwrite(ctx context.Context, a *entities.MeetingAnalytics) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MeetingAnalytics), args.Error(1)
}

func (m *MockAnalyticsRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingAnalytics, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MeetingAnalytics), args.Error(1)
}

func (m *MockAnalyticsRepository) UpsertOrganizationMetrics(ctx context.Context, metrics *entities.OrganizationMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) FindOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) ([]*entities.OrganizationMetrics, error) {
	args := m.Called(ctx, organizationID, period, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.OrganizationMetrics), args.Error(1)
}

type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) StartTracking(ctx context.Context, facts costing.MeetingFacts, at time.Time) error {
	args := m.Called(ctx, facts, at)
	return args.Error(0)
}

func (m *MockTrackerService) RecordJoin(ctx context.Context, meetingID uuid.UUID, p costing.Participant, at time.Time) error {
	args := m.Called(ctx, meetingID, p, at)
	return args.Error(0)
}

func (m *MockTrackerService) RecordLeave(ctx context.Context, meetingID, participantID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, meetingID, participantID, at)
	return args.Error(0)
}

func (m *MockTrackerService) Tick(ctx context.Context, meetingID uuid.UUID, now time.Time) (tracker.RunningCost, error) {
	args := m.Called(ctx, meetingID, now)
	return args.Get(0).(tracker.RunningCost), args.Error(1)
}

func (m *MockTrackerService) GetRunningCost(ctx context.Context, meetingID uuid.UUID) (tracker.RunningCost, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).(tracker.RunningCost), args.Error(1)
}

func (m *MockTrackerService) EndTracking(ctx context.Context, meetingID uuid.UUID, at time.Time) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	args := m.Called(ctx, meetingID, at)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entities.MeetingCost), args.Get(1).(*entities.MeetingAnalytics), args.Error(2)
}

func (m *MockTrackerService) CancelTracking(ctx context.Context, meetingID uuid.UUID) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}

func (m *MockTrackerService) Restore(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Fixtures

type fixture struct {
	svc          *MeetingService
	meetings     *MockMeetingRepository
	participants *MockParticipantRepository
	presence     *MockPresenceRepository
	rooms        *MockRoomRepository
	users        *MockUserRepository
	costs        *MockCostRepository
	analytics    *MockAnalyticsRepository
	trackerSvc   *MockTrackerService
}

func newFixture() *fixture {
	f := &fixture{
		meetings:     new(MockMeetingRepository),
		participants: new(MockParticipantRepository),
		presence:     new(MockPresenceRepository),
		rooms:        new(MockRoomRepository),
		users:        new(MockUserRepository),
		costs:        new(MockCostRepository),
		analytics:    new(MockAnalyticsRepository),
		trackerSvc:   new(MockTrackerService),
	}
	f.svc = NewMeetingService(
		f.meetings, f.participants, f.presence, f.rooms, f.users, f.costs, f.analytics,
		f.trackerSvc,
		costing.NewReconciler(costing.NewRateTable(4000), 5*time.Minute),
		nil, zap.NewNop(),
	)
	return f
}

var scheduledStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func scheduledMeeting(orgID, organizerID uuid.UUID) *entities.Meeting {
	return &entities.Meeting{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		OrganizerID:      organizerID,
		Title:            "Sprint planning",
		Category:         "planning",
		ScheduledStartAt: scheduledStart,
		ScheduledEndAt:   scheduledStart.Add(time.Hour),
		Status:           entities.MeetingStatusScheduled,
	}
}

// Tests

func TestCreateMeeting_InvalidWindow(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateMeeting(context.Background(), CreateMeetingInput{
		OrganizationID:   uuid.New(),
		OrganizerID:      uuid.New(),
		Title:            "Backwards",
		ScheduledStartAt: scheduledStart,
		ScheduledEndAt:   scheduledStart.Add(-time.Hour),
	})

	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidWindow)
}

func TestCreateMeeting_RoomConflict(t *testing.T) {
	f := newFixture()
	roomID := uuid.New()

	f.meetings.On("HasRoomConflict", mock.Anything, roomID, scheduledStart, scheduledStart.Add(time.Hour), (*uuid.UUID)(nil)).
		Return(true, nil)

	_, err := f.svc.CreateMeeting(context.Background(), CreateMeetingInput{
		OrganizationID:   uuid.New(),
		OrganizerID:      uuid.New(),
		Title:            "Clash",
		RoomID:           &roomID,
		ScheduledStartAt: scheduledStart,
		ScheduledEndAt:   scheduledStart.Add(time.Hour),
	})

	assert.ErrorIs(t, err, usecaseErrors.ErrRoomConflict)
	f.meetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMeeting_OrganizerAlwaysOnRoster(t *testing.T) {
	f := newFixture()
	organizerID := uuid.New()
	invitee := uuid.New()

	f.meetings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.participants.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ps []*entities.MeetingParticipant) bool {
		return len(ps) == 2 &&
			ps[0].UserID == organizerID && ps[0].Role == entities.ParticipantRoleOrganizer &&
			ps[1].UserID == invitee && ps[1].Role == entities.ParticipantRoleParticipant
	})).Return(nil)

	meeting, err := f.svc.CreateMeeting(context.Background(), CreateMeetingInput{
		OrganizationID:   uuid.New(),
		OrganizerID:      organizerID,
		Title:            "Kickoff",
		ScheduledStartAt: scheduledStart,
		ScheduledEndAt:   scheduledStart.Add(time.Hour),
		Participants: []ParticipantInput{
			{UserID: invitee, IsRequired: true},
			{UserID: organizerID}, // duplicate of the organizer, skipped
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusScheduled, meeting.Status)
	f.participants.AssertExpectations(t)
}

func TestStartMeeting_NotOrganizer(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	meeting := scheduledMeeting(orgID, uuid.New())

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)

	_, err := f.svc.StartMeeting(context.Background(), orgID, meeting.ID, uuid.New())

	assert.ErrorIs(t, err, usecaseErrors.ErrNotOrganizer)
}

func TestStartMeeting_SnapshotsRosterAndRoomCost(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	roomID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.RoomID = &roomID

	rate := 8000.0
	roster := []*entities.MeetingParticipant{{
		MeetingID:  meeting.ID,
		UserID:     organizerID,
		Role:       entities.ParticipantRoleOrganizer,
		IsRequired: true,
		User:       &entities.User{ID: organizerID, DisplayName: "Dana", HourlyRate: &rate},
	}}

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.users.On("FindByID", mock.Anything, organizerID).Return(roster[0].User, nil)
	f.rooms.On("FindByID", mock.Anything, roomID).Return(&entities.Room{ID: roomID, HourlyCost: 2000}, nil)
	f.participants.On("FindByMeetingID", mock.Anything, meeting.ID).Return(roster, nil)
	f.trackerSvc.On("StartTracking", mock.Anything, mock.MatchedBy(func(facts costing.MeetingFacts) bool {
		return facts.MeetingID == meeting.ID &&
			facts.RoomHourlyCost == 2000 &&
			len(facts.Participants) == 1 &&
			facts.Participants[0].PersonalHourlyRate != nil &&
			*facts.Participants[0].PersonalHourlyRate == 8000
	}), mock.Anything).Return(nil)
	f.meetings.On("Update", mock.Anything, meeting).Return(nil)

	started, err := f.svc.StartMeeting(context.Background(), orgID, meeting.ID, organizerID)

	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusInProgress, started.Status)
	require.NotNil(t, started.ActualStartAt)
	f.trackerSvc.AssertExpectations(t)
}

func TestJoinMeeting_WalkInIsAdmitted(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	meeting := scheduledMeeting(orgID, uuid.New())
	meeting.Status = entities.MeetingStatusInProgress
	walkIn := uuid.New()

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.participants.On("FindByMeetingAndUser", mock.Anything, meeting.ID, walkIn).
		Return(nil, gorm.ErrRecordNotFound)
	f.users.On("FindByID", mock.Anything, walkIn).
		Return(&entities.User{ID: walkIn, DisplayName: "Guest"}, nil)
	f.participants.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.MeetingParticipant) bool {
		return p.UserID == walkIn && !p.IsRequired
	})).Return(nil)
	f.trackerSvc.On("RecordJoin", mock.Anything, meeting.ID, mock.Anything, mock.Anything).Return(nil)
	f.presence.On("FindOpenByMeetingAndUser", mock.Anything, meeting.ID, walkIn).
		Return(nil, gorm.ErrRecordNotFound)
	f.presence.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.participants.On("Update", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.JoinMeeting(context.Background(), orgID, meeting.ID, walkIn)

	require.NoError(t, err)
	f.participants.AssertExpectations(t)
}

func TestJoinMeeting_NotRunning(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	meeting := scheduledMeeting(orgID, uuid.New())

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)

	err := f.svc.JoinMeeting(context.Background(), orgID, meeting.ID, uuid.New())

	assert.ErrorIs(t, err, usecaseErrors.ErrNotRunning)
}

func TestEndMeeting_CompletedOnlyAfterCostPersisted(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.Status = entities.MeetingStatusInProgress

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.trackerSvc.On("EndTracking", mock.Anything, meeting.ID, mock.Anything).
		Return(nil, nil, usecaseErrors.ErrCostPersistence)

	_, _, err := f.svc.EndMeeting(context.Background(), orgID, meeting.ID, organizerID)

	assert.ErrorIs(t, err, usecaseErrors.ErrCostPersistence)
	assert.Equal(t, entities.MeetingStatusInProgress, meeting.Status)
	f.meetings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEndMeeting_Success(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.Status = entities.MeetingStatusInProgress

	cost := &entities.MeetingCost{MeetingID: meeting.ID, TotalCost: 12345}
	analytics := &entities.MeetingAnalytics{MeetingID: meeting.ID}

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.trackerSvc.On("EndTracking", mock.Anything, meeting.ID, mock.Anything).Return(cost, analytics, nil)
	f.meetings.On("Update", mock.Anything, meeting).Return(nil)
	f.presence.On("FindByMeetingID", mock.Anything, meeting.ID).Return([]*entities.PresenceSession{}, nil)

	gotCost, gotAnalytics, err := f.svc.EndMeeting(context.Background(), orgID, meeting.ID, organizerID)

	require.NoError(t, err)
	assert.Equal(t, cost, gotCost)
	assert.Equal(t, analytics, gotAnalytics)
	assert.Equal(t, entities.MeetingStatusCompleted, meeting.Status)
}

func TestEndMeeting_RecoversLostStatusFlip(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.Status = entities.MeetingStatusInProgress

	cost := &entities.MeetingCost{MeetingID: meeting.ID, TotalCost: 12345}
	analytics := &entities.MeetingAnalytics{MeetingID: meeting.ID}

	// a previous end reconciled and forgot the tracker, but the status
	// update never landed; the retry must complete the meeting from the
	// persisted record instead of failing with "not running"
	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.trackerSvc.On("EndTracking", mock.Anything, meeting.ID, mock.Anything).
		Return(nil, nil, usecaseErrors.ErrTrackerNotFound)
	f.costs.On("FindByMeetingID", mock.Anything, meeting.ID).Return(cost, nil)
	f.meetings.On("UpdateStatus", mock.Anything, meeting.ID, entities.MeetingStatusCompleted).Return(nil)
	f.presence.On("FindByMeetingID", mock.Anything, meeting.ID).Return([]*entities.PresenceSession{}, nil)
	f.analytics.On("FindByMeetingID", mock.Anything, meeting.ID).Return(analytics, nil)

	gotCost, gotAnalytics, err := f.svc.EndMeeting(context.Background(), orgID, meeting.ID, organizerID)

	require.NoError(t, err)
	assert.Equal(t, cost, gotCost)
	assert.Equal(t, analytics, gotAnalytics)
	f.meetings.AssertCalled(t, "UpdateStatus", mock.Anything, meeting.ID, entities.MeetingStatusCompleted)
}

func TestEndMeeting_TrackerGoneWithoutCostRecord(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.Status = entities.MeetingStatusInProgress

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.trackerSvc.On("EndTracking", mock.Anything, meeting.ID, mock.Anything).
		Return(nil, nil, usecaseErrors.ErrTrackerNotFound)
	f.costs.On("FindByMeetingID", mock.Anything, meeting.ID).Return(nil, usecaseErrors.ErrNotFound)

	_, _, err := f.svc.EndMeeting(context.Background(), orgID, meeting.ID, organizerID)

	assert.ErrorIs(t, err, usecaseErrors.ErrTrackerNotFound)
	f.meetings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRestoreTrackers_CompletesReconciledMeetings(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	stranded := scheduledMeeting(orgID, uuid.New())
	stranded.Status = entities.MeetingStatusInProgress
	running := scheduledMeeting(orgID, uuid.New())
	running.Status = entities.MeetingStatusInProgress

	f.trackerSvc.On("Restore", mock.Anything).Return(1, nil)
	f.meetings.On("FindInProgress", mock.Anything).
		Return([]*entities.Meeting{stranded, running}, nil)
	f.costs.On("ExistsForMeeting", mock.Anything, stranded.ID).Return(true, nil)
	f.costs.On("ExistsForMeeting", mock.Anything, running.ID).Return(false, nil)
	f.meetings.On("UpdateStatus", mock.Anything, stranded.ID, entities.MeetingStatusCompleted).Return(nil)

	require.NoError(t, f.svc.RestoreTrackers(context.Background()))

	f.meetings.AssertCalled(t, "UpdateStatus", mock.Anything, stranded.ID, entities.MeetingStatusCompleted)
	f.meetings.AssertNotCalled(t, "UpdateStatus", mock.Anything, running.ID, mock.Anything)
}

func TestRemoveParticipant_CannotRemoveOrganizer(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)

	err := f.svc.RemoveParticipant(context.Background(), orgID, meeting.ID, organizerID, organizerID)

	assert.ErrorIs(t, err, usecaseErrors.ErrCannotRemoveOrganizer)
}

func TestCancelMeeting_DiscardsRunningTracker(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()
	organizerID := uuid.New()
	meeting := scheduledMeeting(orgID, organizerID)
	meeting.Status = entities.MeetingStatusInProgress

	f.meetings.On("FindByID", mock.Anything, orgID, meeting.ID).Return(meeting, nil)
	f.trackerSvc.On("CancelTracking", mock.Anything, meeting.ID).Return(nil)
	f.presence.On("FindByMeetingID", mock.Anything, meeting.ID).Return([]*entities.PresenceSession{}, nil)
	f.meetings.On("Update", mock.Anything, meeting).Return(nil)

	err := f.svc.CancelMeeting(context.Background(), orgID, meeting.ID, organizerID)

	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusCancelled, meeting.Status)
	f.costs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
