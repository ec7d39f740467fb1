package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

// MeetingService handles meeting business logic and drives the cost engine
type MeetingService struct {
	meetingRepo     repositories.MeetingRepository
	participantRepo repositories.ParticipantRepository
	presenceRepo    repositories.PresenceRepository
	roomRepo        repositories.RoomRepository
	userRepo        repositories.UserRepository
	costRepo        repositories.CostRepository
	analyticsRepo   repositories.AnalyticsRepository
	trackerSvc      tracker.Service
	reconciler      *costing.Reconciler
	clock           tracker.Clock
	logger          *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	presenceRepo repositories.PresenceRepository,
	roomRepo repositories.RoomRepository,
	userRepo repositories.UserRepository,
	costRepo repositories.CostRepository,
	analyticsRepo repositories.AnalyticsRepository,
	trackerSvc tracker.Service,
	reconciler *costing.Reconciler,
	clock tracker.Clock,
	logger *zap.Logger,
) *MeetingService {
	if clock == nil {
		clock = tracker.SystemClock()
	}
	return &MeetingService{
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		presenceRepo:    presenceRepo,
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		costRepo:        costRepo,
		analyticsRepo:   analyticsRepo,
		trackerSvc:      trackerSvc,
		reconciler:      reconciler,
		clock:           clock,
		logger:          logger,
	}
}

// CreateMeetingInput represents input for scheduling a meeting
type CreateMeetingInput struct {
	OrganizationID   uuid.UUID
	OrganizerID      uuid.UUID
	Title            string
	Description      *string
	Category         string
	Location         *string
	RoomID           *uuid.UUID
	IsOnline         bool
	ScheduledStartAt time.Time
	ScheduledEndAt   time.Time
	ExpectedRevenue  *float64
	Priority         entities.MeetingPriority
	Participants     []ParticipantInput
}

// ParticipantInput is one invited participant
type ParticipantInput struct {
	UserID             uuid.UUID
	Role               entities.ParticipantRole
	IsRequired         bool
	HourlyRateOverride *float64
}

// UpdateMeetingInput represents input for updating a scheduled meeting
type UpdateMeetingInput struct {
	OrganizationID   uuid.UUID
	MeetingID        uuid.UUID
	RequesterID      uuid.UUID
	Title            *string
	Description      *string
	Category         *string
	RoomID           *uuid.UUID
	ScheduledStartAt *time.Time
	ScheduledEndAt   *time.Time
	ExpectedRevenue  *float64
	Priority         *entities.MeetingPriority
}

// AddParticipantInput represents input for inviting a participant
type AddParticipantInput struct {
	OrganizationID     uuid.UUID
	MeetingID          uuid.UUID
	RequesterID        uuid.UUID
	UserID             uuid.UUID
	Role               entities.ParticipantRole
	IsRequired         bool
	HourlyRateOverride *float64
}

// UpdateParticipantInput represents input for updating a participant
type UpdateParticipantInput struct {
	OrganizationID     uuid.UUID
	MeetingID          uuid.UUID
	RequesterID        uuid.UUID
	UserID             uuid.UUID
	Role               *entities.ParticipantRole
	InvitationStatus   *entities.InvitationStatus
	IsRequired         *bool
	HourlyRateOverride *float64
}

// CreateMeeting schedules a new meeting with its invited participants
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	if !input.ScheduledEndAt.After(input.ScheduledStartAt) {
		return nil, usecaseErrors.ErrInvalidWindow
	}

	if input.RoomID != nil {
		conflict, err := s.meetingRepo.HasRoomConflict(ctx, *input.RoomID, input.ScheduledStartAt, input.ScheduledEndAt, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check room availability: %w", err)
		}
		if conflict {
			return nil, usecaseErrors.ErrRoomConflict
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = entities.MeetingPriorityMedium
	}

	meeting := &entities.Meeting{
		OrganizationID:   input.OrganizationID,
		OrganizerID:      input.OrganizerID,
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Location:         input.Location,
		RoomID:           input.RoomID,
		IsOnline:         input.IsOnline,
		ScheduledStartAt: input.ScheduledStartAt,
		ScheduledEndAt:   input.ScheduledEndAt,
		ExpectedRevenue:  input.ExpectedRevenue,
		Priority:         priority,
		Status:           entities.MeetingStatusScheduled,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	participants := []*entities.MeetingParticipant{{
		MeetingID:  meeting.ID,
		UserID:     input.OrganizerID,
		Role:       entities.ParticipantRoleOrganizer,
		IsRequired: true,
	}}
	for _, p := range input.Participants {
		if p.UserID == input.OrganizerID {
			continue
		}
		role := p.Role
		if role == "" || role == entities.ParticipantRoleOrganizer {
			role = entities.ParticipantRoleParticipant
		}
		participants = append(participants, &entities.MeetingParticipant{
			MeetingID:          meeting.ID,
			UserID:             p.UserID,
			Role:               role,
			IsRequired:         p.IsRequired,
			HourlyRateOverride: p.HourlyRateOverride,
		})
	}

	if err := s.participantRepo.CreateBatch(ctx, participants); err != nil {
		return nil, fmt.Errorf("failed to add participants: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Meeting scheduled",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("title", meeting.Title),
			zap.Int("invited", len(participants)),
		)
	}
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID within an organization
func (s *MeetingService) GetMeeting(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, organizationID, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings retrieves meetings with filters and pagination
func (s *MeetingService) ListMeetings(ctx context.Context, organizationID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.meetingRepo.List(ctx, organizationID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// UpdateMeeting updates a scheduled meeting (organizer only)
func (s *MeetingService) UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*entities.Meeting, error) {
	meeting, err := s.GetMeeting(ctx, input.OrganizationID, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizerID != input.RequesterID {
		return nil, usecaseErrors.ErrNotOrganizer
	}
	if meeting.Status != entities.MeetingStatusScheduled {
		return nil, usecaseErrors.ErrAlreadyStarted
	}

	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Description != nil {
		meeting.Description = input.Description
	}
	if input.Category != nil {
		meeting.Category = *input.Category
	}
	if input.RoomID != nil {
		meeting.RoomID = input.RoomID
	}
	if input.ScheduledStartAt != nil {
		meeting.ScheduledStartAt = *input.ScheduledStartAt
	}
	if input.ScheduledEndAt != nil {
		meeting.ScheduledEndAt = *input.ScheduledEndAt
	}
	if input.ExpectedRevenue != nil {
		meeting.ExpectedRevenue = input.ExpectedRevenue
	}
	if input.Priority != nil {
		meeting.Priority = *input.Priority
	}

	if !meeting.ScheduledEndAt.After(meeting.ScheduledStartAt) {
		return nil, usecaseErrors.ErrInvalidWindow
	}
	if meeting.RoomID != nil {
		conflict, err := s.meetingRepo.HasRoomConflict(ctx, *meeting.RoomID, meeting.ScheduledStartAt, meeting.ScheduledEndAt, &meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room availability: %w", err)
		}
		if conflict {
			return nil, usecaseErrors.ErrRoomConflict
		}
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return meeting, nil
}

// DeleteMeeting soft deletes a scheduled meeting (organizer only)
func (s *MeetingService) DeleteMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return err
	}
	if meeting.OrganizerID != userID {
		return usecaseErrors.ErrNotOrganizer
	}
	if meeting.Status == entities.MeetingStatusInProgress {
		return usecaseErrors.ErrAlreadyStarted
	}
	if err := s.meetingRepo.Delete(ctx, meetingID); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}

// AddParticipant invites a user to a meeting (organizer only)
func (s *MeetingService) AddParticipant(ctx context.Context, input AddParticipantInput) (*entities.MeetingParticipant, error) {
	meeting, err := s.GetMeeting(ctx, input.OrganizationID, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizerID != input.RequesterID {
		return nil, usecaseErrors.ErrNotOrganizer
	}

	if existing, err := s.participantRepo.FindByMeetingAndUser(ctx, input.MeetingID, input.UserID); err == nil && existing != nil {
		return nil, usecaseErrors.ErrAlreadyParticipant
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	role := input.Role
	if role == "" || role == entities.ParticipantRoleOrganizer {
		role = entities.ParticipantRoleParticipant
	}
	participant := &entities.MeetingParticipant{
		MeetingID:          input.MeetingID,
		UserID:             input.UserID,
		Role:               role,
		IsRequired:         input.IsRequired,
		HourlyRateOverride: input.HourlyRateOverride,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	return participant, nil
}

// UpdateParticipant changes a participant's role, required flag or rate override
func (s *MeetingService) UpdateParticipant(ctx context.Context, input UpdateParticipantInput) (*entities.MeetingParticipant, error) {
	meeting, err := s.GetMeeting(ctx, input.OrganizationID, input.MeetingID)
	if err != nil {
		return nil, err
	}
	// participants may update their own invitation status; everything
	// else is organizer-only
	organizerChange := input.Role != nil || input.IsRequired != nil || input.HourlyRateOverride != nil
	if organizerChange && meeting.OrganizerID != input.RequesterID {
		return nil, usecaseErrors.ErrNotOrganizer
	}
	if !organizerChange && input.RequesterID != input.UserID && meeting.OrganizerID != input.RequesterID {
		return nil, usecaseErrors.ErrForbidden
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, input.MeetingID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	if input.Role != nil && !participant.IsOrganizer() {
		participant.Role = *input.Role
	}
	if input.InvitationStatus != nil {
		participant.InvitationStatus = *input.InvitationStatus
	}
	if input.IsRequired != nil {
		participant.IsRequired = *input.IsRequired
	}
	if input.HourlyRateOverride != nil {
		participant.HourlyRateOverride = input.HourlyRateOverride
	}

	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	return participant, nil
}

// RemoveParticipant uninvites a user (organizer only)
func (s *MeetingService) RemoveParticipant(ctx context.Context, organizationID, meetingID, requesterID, userID uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return err
	}
	if meeting.OrganizerID != requesterID {
		return usecaseErrors.ErrNotOrganizer
	}
	if meeting.OrganizerID == userID {
		return usecaseErrors.ErrCannotRemoveOrganizer
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrParticipantNotFound
		}
		return fmt.Errorf("failed to get participant: %w", err)
	}
	if err := s.participantRepo.Delete(ctx, participant.ID); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// GetParticipants retrieves all participants of a meeting
func (s *MeetingService) GetParticipants(ctx context.Context, organizationID, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	if _, err := s.GetMeeting(ctx, organizationID, meetingID); err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return participants, nil
}

// StartMeeting transitions the meeting to in progress and starts its cost
// tracker. The roster's rates are snapshotted here, so profile or role
// changes during the meeting never affect its bill.
func (s *MeetingService) StartMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizerID != userID {
		return nil, usecaseErrors.ErrNotOrganizer
	}
	switch meeting.Status {
	case entities.MeetingStatusInProgress:
		return nil, usecaseErrors.ErrAlreadyStarted
	case entities.MeetingStatusCompleted, entities.MeetingStatusCancelled:
		return nil, usecaseErrors.ErrAlreadyEnded
	}

	facts, err := s.buildFacts(ctx, meeting)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.trackerSvc.StartTracking(ctx, facts, now); err != nil {
		return nil, err
	}

	meeting.Start(now)
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to mark meeting started: %w", err)
	}
	return meeting, nil
}

// JoinMeeting records a participant joining a running meeting. A user
// without an invitation is admitted as a walk-in with required=false at
// whatever rate the directory resolves for them.
func (s *MeetingService) JoinMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return err
	}
	if !meeting.IsInProgress() {
		return usecaseErrors.ErrNotRunning
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to get participant: %w", err)
		}
		participant, err = s.admitWalkIn(ctx, meetingID, userID)
		if err != nil {
			return err
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.clock.Now()
	if err := s.trackerSvc.RecordJoin(ctx, meetingID, rateSnapshot(participant, user), now); err != nil {
		return err
	}

	// durable copy of the session; the in-memory ledger stays authoritative
	if open, err := s.presenceRepo.FindOpenByMeetingAndUser(ctx, meetingID, userID); err != nil || open == nil {
		session := &entities.PresenceSession{
			MeetingID: meetingID,
			UserID:    userID,
			JoinedAt:  now,
		}
		if err := s.presenceRepo.Create(ctx, session); err != nil && s.logger != nil {
			s.logger.Warn("Presence session write failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}

	participant.MarkJoined(now)
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}

// LeaveMeeting records a participant leaving a running meeting
func (s *MeetingService) LeaveMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return err
	}
	if !meeting.IsInProgress() {
		return usecaseErrors.ErrNotRunning
	}

	now := s.clock.Now()
	if err := s.trackerSvc.RecordLeave(ctx, meetingID, userID, now); err != nil {
		return err
	}

	if open, err := s.presenceRepo.FindOpenByMeetingAndUser(ctx, meetingID, userID); err == nil && open != nil {
		open.Close(now, false)
		if err := s.presenceRepo.Update(ctx, open); err != nil && s.logger != nil {
			s.logger.Warn("Presence session close failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}

	if participant, err := s.participantRepo.FindByMeetingAndUser(ctx, meetingID, userID); err == nil {
		participant.MarkLeft(now)
		if err := s.participantRepo.Update(ctx, participant); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}
	}
	return nil
}

// EndMeeting ends the meeting and reconciles its final cost
func (s *MeetingService) EndMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return nil, nil, err
	}
	if meeting.OrganizerID != userID {
		return nil, nil, usecaseErrors.ErrNotOrganizer
	}
	if meeting.Status == entities.MeetingStatusCompleted || meeting.Status == entities.MeetingStatusCancelled {
		return nil, nil, usecaseErrors.ErrAlreadyEnded
	}
	if !meeting.IsInProgress() {
		return nil, nil, usecaseErrors.ErrNotRunning
	}

	now := s.clock.Now()
	cost, analytics, err := s.trackerSvc.EndTracking(ctx, meetingID, now)
	if err != nil {
		// a previous end may have persisted the cost record but lost
		// the status flip; finish that end instead of failing
		if errors.Is(err, usecaseErrors.ErrTrackerNotFound) || errors.Is(err, usecaseErrors.ErrAlreadyReconciled) {
			if c, a, recErr := s.recoverCompletion(ctx, meetingID, now); recErr == nil {
				return c, a, nil
			}
		}
		return nil, nil, err
	}

	// the meeting only reports completed once the cost record exists
	meeting.End(now)
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, nil, fmt.Errorf("failed to mark meeting completed: %w", err)
	}

	s.closeDurableSessions(ctx, meetingID, now)
	return cost, analytics, nil
}

// recoverCompletion finishes an end whose reconciliation already persisted
// but whose status flip did not: an in-progress meeting with an existing
// cost record is marked completed and the stored records are returned.
func (s *MeetingService) recoverCompletion(ctx context.Context, meetingID uuid.UUID, now time.Time) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	cost, err := s.costRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.meetingRepo.UpdateStatus(ctx, meetingID, entities.MeetingStatusCompleted); err != nil {
		return nil, nil, fmt.Errorf("failed to mark meeting completed: %w", err)
	}
	s.closeDurableSessions(ctx, meetingID, now)

	analytics, err := s.analyticsRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Analytics record missing on completion recovery",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		analytics = nil
	}
	return cost, analytics, nil
}

// CancelMeeting cancels a meeting; a running tracker is discarded without
// producing a cost record
func (s *MeetingService) CancelMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return err
	}
	if meeting.OrganizerID != userID {
		return usecaseErrors.ErrNotOrganizer
	}
	if meeting.Status == entities.MeetingStatusCompleted || meeting.Status == entities.MeetingStatusCancelled {
		return usecaseErrors.ErrAlreadyEnded
	}

	if meeting.IsInProgress() {
		if err := s.trackerSvc.CancelTracking(ctx, meetingID); err != nil &&
			!errors.Is(err, usecaseErrors.ErrTrackerNotFound) {
			return err
		}
		s.closeDurableSessions(ctx, meetingID, s.clock.Now())
	}

	meeting.Cancel()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to cancel meeting: %w", err)
	}
	return nil
}

// GetRunningCost returns the live cost snapshot of a running meeting
func (s *MeetingService) GetRunningCost(ctx context.Context, organizationID, meetingID uuid.UUID) (tracker.RunningCost, error) {
	if _, err := s.GetMeeting(ctx, organizationID, meetingID); err != nil {
		return tracker.RunningCost{}, err
	}
	return s.trackerSvc.GetRunningCost(ctx, meetingID)
}

// GetMeetingCost returns the finalized cost record of a completed meeting
func (s *MeetingService) GetMeetingCost(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.MeetingCost, error) {
	if _, err := s.GetMeeting(ctx, organizationID, meetingID); err != nil {
		return nil, err
	}
	cost, err := s.costRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meeting cost: %w", err)
	}
	return cost, nil
}

// RecomputeCost rebuilds the cost record from the persisted presence
// sessions and overwrites the stored record, flagged as recomputed.
func (s *MeetingService) RecomputeCost(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.MeetingCost, error) {
	meeting, err := s.GetMeeting(ctx, organizationID, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.IsCompleted() || meeting.ActualStartAt == nil || meeting.ActualEndAt == nil {
		return nil, usecaseErrors.ErrNotRunning
	}

	facts, err := s.buildFacts(ctx, meeting)
	if err != nil {
		return nil, err
	}

	stored, err := s.presenceRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load presence sessions: %w", err)
	}
	sessions := make([]costing.Session, 0, len(stored))
	for _, ps := range stored {
		sessions = append(sessions, costing.Session{
			ParticipantID: ps.UserID,
			JoinedAt:      ps.JoinedAt,
			LeftAt:        ps.LeftAt,
		})
	}

	cost, analytics, err := s.reconciler.Reconcile(*meeting.ActualStartAt, *meeting.ActualEndAt, sessions, facts)
	if err != nil {
		return nil, err
	}
	cost.Recomputed = true

	if err := s.costRepo.Overwrite(ctx, cost); err != nil {
		return nil, fmt.Errorf("failed to overwrite cost record: %w", err)
	}
	if err := s.analyticsRepo.Overwrite(ctx, analytics); err != nil {
		return nil, fmt.Errorf("failed to overwrite analytics record: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Meeting cost recomputed",
			zap.String("meeting_id", meetingID.String()),
			zap.Float64("total_cost", cost.TotalCost),
		)
	}
	return cost, nil
}

// RestoreTrackers rebuilds live trackers from persisted snapshots and
// completes meetings whose reconciliation persisted before a crash but
// whose status flip was lost.
func (s *MeetingService) RestoreTrackers(ctx context.Context) error {
	if _, err := s.trackerSvc.Restore(ctx); err != nil {
		return err
	}

	inProgress, err := s.meetingRepo.FindInProgress(ctx)
	if err != nil {
		return err
	}
	for _, m := range inProgress {
		exists, err := s.costRepo.ExistsForMeeting(ctx, m.ID)
		if err != nil || !exists {
			continue
		}
		if err := s.meetingRepo.UpdateStatus(ctx, m.ID, entities.MeetingStatusCompleted); err != nil {
			if s.logger != nil {
				s.logger.Warn("Failed to complete reconciled meeting on restore",
					zap.String("meeting_id", m.ID.String()),
					zap.Error(err),
				)
			}
			continue
		}
		if s.logger != nil {
			s.logger.Info("✅ Completed reconciled meeting recovered on restore",
				zap.String("meeting_id", m.ID.String()),
			)
		}
	}
	return nil
}

// buildFacts assembles the reconciliation input for a meeting: scheduled
// window, room cost and the roster's rate snapshots.
func (s *MeetingService) buildFacts(ctx context.Context, meeting *entities.Meeting) (costing.MeetingFacts, error) {
	facts := costing.MeetingFacts{
		MeetingID:        meeting.ID,
		OrganizationID:   meeting.OrganizationID,
		Category:         meeting.Category,
		ScheduledStartAt: meeting.ScheduledStartAt,
		ScheduledEndAt:   meeting.ScheduledEndAt,
		ExpectedRevenue:  meeting.ExpectedRevenue,
	}

	if organizer, err := s.userRepo.FindByID(ctx, meeting.OrganizerID); err == nil {
		facts.DepartmentID = organizer.DepartmentID
	}

	if meeting.RoomID != nil {
		room, err := s.roomRepo.FindByID(ctx, *meeting.RoomID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return facts, fmt.Errorf("failed to look up room: %w", err)
			}
		} else {
			facts.RoomHourlyCost = room.HourlyCost
		}
	}

	participants, err := s.participantRepo.FindByMeetingID(ctx, meeting.ID)
	if err != nil {
		return facts, fmt.Errorf("failed to load participants: %w", err)
	}
	for _, p := range participants {
		facts.Participants = append(facts.Participants, rateSnapshot(p, p.User))
	}
	return facts, nil
}

// admitWalkIn adds an uninvited joiner to the roster with required=false
func (s *MeetingService) admitWalkIn(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	participant := &entities.MeetingParticipant{
		MeetingID:        meetingID,
		UserID:           userID,
		Role:             entities.ParticipantRoleParticipant,
		InvitationStatus: entities.InvitationStatusAccepted,
		IsRequired:       false,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to admit walk-in: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Walk-in participant admitted",
			zap.String("meeting_id", meetingID.String()),
			zap.String("user_id", userID.String()),
		)
	}
	return participant, nil
}

// closeDurableSessions force-closes any still-open persisted sessions
func (s *MeetingService) closeDurableSessions(ctx context.Context, meetingID uuid.UUID, at time.Time) {
	stored, err := s.presenceRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Presence session cleanup failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		return
	}
	for _, ps := range stored {
		if !ps.IsOpen() {
			continue
		}
		ps.Close(at, true)
		if err := s.presenceRepo.Update(ctx, ps); err != nil && s.logger != nil {
			s.logger.Warn("Presence session cleanup failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}
}

// rateSnapshot freezes a participant's applicable rates for costing
func rateSnapshot(p *entities.MeetingParticipant, u *entities.User) costing.Participant {
	snap := costing.Participant{
		ID:                 p.UserID,
		Required:           p.IsRequired,
		OverrideHourlyRate: p.HourlyRateOverride,
	}
	if u != nil {
		snap.DisplayName = u.DisplayName
		snap.PersonalHourlyRate = u.HourlyRate
		snap.DepartmentID = u.DepartmentID
		if u.Role != nil {
			rate := u.Role.DefaultHourlyRate
			snap.RoleDefaultRate = &rate
		}
	}
	return snap
}
