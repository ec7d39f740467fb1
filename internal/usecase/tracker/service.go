package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	domainrepo "github.com/meetcost-team/meetcost/internal/domain/repositories"
	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// CostArchiver writes finalized cost records to long-term audit storage.
// Archiving is best-effort and never blocks reconciliation.
type CostArchiver interface {
	ArchiveCost(ctx context.Context, cost *entities.MeetingCost, analytics *entities.MeetingAnalytics) error
}

// Service manages the live cost trackers, one per in-progress meeting
type Service interface {
	StartTracking(ctx context.Context, facts costing.MeetingFacts, at time.Time) error
	RecordJoin(ctx context.Context, meetingID uuid.UUID, participant costing.Participant, at time.Time) error
	RecordLeave(ctx context.Context, meetingID, participantID uuid.UUID, at time.Time) error
	Tick(ctx context.Context, meetingID uuid.UUID, now time.Time) (RunningCost, error)
	GetRunningCost(ctx context.Context, meetingID uuid.UUID) (RunningCost, error)
	EndTracking(ctx context.Context, meetingID uuid.UUID, at time.Time) (*entities.MeetingCost, *entities.MeetingAnalytics, error)
	CancelTracking(ctx context.Context, meetingID uuid.UUID) error
	Restore(ctx context.Context) (int, error)
}

type pendingResult struct {
	cost      *entities.MeetingCost
	analytics *entities.MeetingAnalytics

	// costWritten records that the cost row was already inserted, so a
	// retry only re-attempts the analytics insert instead of tripping
	// the write-once guard on the cost table
	costWritten bool
}

type trackerService struct {
	mu       sync.Mutex
	trackers map[uuid.UUID]*Tracker

	// reconciled results whose persistence failed, kept so the caller's
	// retry of EndTracking completes the same reconciliation instead of
	// failing on the terminal tracker state
	pending map[uuid.UUID]pendingResult

	reconciler    *costing.Reconciler
	costRepo      domainrepo.CostRepository
	analyticsRepo domainrepo.AnalyticsRepository
	snapshots     SnapshotStore
	archiver      CostArchiver
	clock         Clock
	logger        *zap.Logger
}

// NewService constructs the tracker service. archiver may be nil when no
// audit storage is configured.
func NewService(
	reconciler *costing.Reconciler,
	costRepo domainrepo.CostRepository,
	analyticsRepo domainrepo.AnalyticsRepository,
	snapshots SnapshotStore,
	archiver CostArchiver,
	clock Clock,
	logger *zap.Logger,
) Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &trackerService{
		trackers:      make(map[uuid.UUID]*Tracker),
		pending:       make(map[uuid.UUID]pendingResult),
		reconciler:    reconciler,
		costRepo:      costRepo,
		analyticsRepo: analyticsRepo,
		snapshots:     snapshots,
		archiver:      archiver,
		clock:         clock,
		logger:        logger,
	}
}

// StartTracking creates and starts the tracker for a meeting. Fails with
// ErrAlreadyStarted when one is already running and ErrAlreadyReconciled
// when the meeting already has a finalized cost record.
func (s *trackerService) StartTracking(ctx context.Context, facts costing.MeetingFacts, at time.Time) error {
	exists, err := s.costRepo.ExistsForMeeting(ctx, facts.MeetingID)
	if err != nil {
		return err
	}
	if exists {
		return usecaseErrors.ErrAlreadyReconciled
	}

	s.mu.Lock()
	if _, ok := s.trackers[facts.MeetingID]; ok {
		s.mu.Unlock()
		return usecaseErrors.ErrAlreadyStarted
	}
	t := NewTracker(facts, s.reconciler)
	s.trackers[facts.MeetingID] = t
	s.mu.Unlock()

	if err := t.Start(at); err != nil {
		s.forget(facts.MeetingID)
		return err
	}

	s.persistSnapshot(t)

	if s.logger != nil {
		s.logger.Info("✅ Cost tracking started",
			zap.String("meeting_id", facts.MeetingID.String()),
			zap.Int("roster_size", len(facts.Participants)),
		)
	}
	return nil
}

// RecordJoin opens a presence session on the meeting's tracker.
func (s *trackerService) RecordJoin(ctx context.Context, meetingID uuid.UUID, participant costing.Participant, at time.Time) error {
	t, err := s.tracker(meetingID)
	if err != nil {
		return err
	}
	if err := t.RecordJoin(participant, at); err != nil {
		return err
	}
	s.persistSnapshot(t)
	return nil
}

// RecordLeave closes a presence session on the meeting's tracker.
func (s *trackerService) RecordLeave(ctx context.Context, meetingID, participantID uuid.UUID, at time.Time) error {
	t, err := s.tracker(meetingID)
	if err != nil {
		return err
	}
	if err := t.RecordLeave(participantID, at); err != nil {
		return err
	}
	s.persistSnapshot(t)
	return nil
}

// Tick recomputes the running cost at now and persists a snapshot
// best-effort. Snapshot failure never fails the tick.
func (s *trackerService) Tick(ctx context.Context, meetingID uuid.UUID, now time.Time) (RunningCost, error) {
	t, err := s.tracker(meetingID)
	if err != nil {
		return RunningCost{}, err
	}
	rc, err := t.Tick(now)
	if err != nil {
		return RunningCost{}, err
	}
	s.persistSnapshot(t)
	return rc, nil
}

// GetRunningCost returns the live cost at the current wall-clock time.
func (s *trackerService) GetRunningCost(ctx context.Context, meetingID uuid.UUID) (RunningCost, error) {
	t, err := s.tracker(meetingID)
	if err != nil {
		return RunningCost{}, err
	}
	return t.Tick(s.clock.Now())
}

// EndTracking ends the meeting, reconciles and persists the cost and
// analytics records. Persistence is retried with exponential backoff;
// exhausting the retries fails the call with ErrCostPersistence so the
// meeting is never reported ended without a cost record.
func (s *trackerService) EndTracking(ctx context.Context, meetingID uuid.UUID, at time.Time) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	pend, ok := s.getPending(meetingID)
	if !ok {
		t, err := s.tracker(meetingID)
		if err != nil {
			return nil, nil, err
		}
		cost, analytics, err := t.End(at)
		if err != nil {
			return nil, nil, err
		}
		pend = pendingResult{cost: cost, analytics: analytics}
	}
	cost, analytics := pend.cost, pend.analytics

	persist := func() error {
		if !pend.costWritten {
			if err := s.costRepo.Create(ctx, cost); err != nil {
				if errors.Is(err, usecaseErrors.ErrAlreadyReconciled) {
					return backoff.Permanent(err)
				}
				return err
			}
			pend.costWritten = true
		}
		return s.analyticsRepo.Create(ctx, analytics)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(persist, backoff.WithContext(bo, ctx)); err != nil {
		if errors.Is(err, usecaseErrors.ErrAlreadyReconciled) {
			return nil, nil, err
		}
		s.setPending(meetingID, pend)
		if s.logger != nil {
			s.logger.Error("❌ Failed to persist reconciled cost after retries",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		return nil, nil, usecaseErrors.ErrCostPersistence
	}

	s.clearPending(meetingID)
	s.forget(meetingID)
	s.deleteSnapshot(meetingID)
	s.archive(cost, analytics)

	if s.logger != nil {
		s.logger.Info("✅ Meeting cost reconciled",
			zap.String("meeting_id", meetingID.String()),
			zap.Float64("total_cost", cost.TotalCost),
			zap.Int("participant_count", cost.ParticipantCount),
		)
	}
	return cost, analytics, nil
}

// CancelTracking discards the tracker without producing a cost record.
func (s *trackerService) CancelTracking(ctx context.Context, meetingID uuid.UUID) error {
	t, err := s.tracker(meetingID)
	if err != nil {
		return err
	}
	if err := t.Cancel(); err != nil {
		return err
	}
	s.forget(meetingID)
	s.deleteSnapshot(meetingID)

	if s.logger != nil {
		s.logger.Info("Cost tracking cancelled", zap.String("meeting_id", meetingID.String()))
	}
	return nil
}

// Restore rebuilds running trackers from persisted snapshots after a
// restart. Returns how many trackers were recovered.
func (s *trackerService) Restore(ctx context.Context) (int, error) {
	if s.snapshots == nil {
		return 0, nil
	}
	snaps, err := s.snapshots.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range snaps {
		if snap.State != StateRunning {
			continue
		}
		if _, ok := s.trackers[snap.MeetingID]; ok {
			continue
		}
		s.trackers[snap.MeetingID] = RestoreTracker(snap, s.reconciler)
		restored++
	}

	if s.logger != nil && restored > 0 {
		s.logger.Info("✅ Restored running cost trackers", zap.Int("count", restored))
	}
	return restored, nil
}

func (s *trackerService) tracker(meetingID uuid.UUID) (*Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[meetingID]
	if !ok {
		return nil, usecaseErrors.ErrTrackerNotFound
	}
	return t, nil
}

func (s *trackerService) forget(meetingID uuid.UUID) {
	s.mu.Lock()
	delete(s.trackers, meetingID)
	s.mu.Unlock()
}

func (s *trackerService) getPending(meetingID uuid.UUID) (pendingResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[meetingID]
	return p, ok
}

func (s *trackerService) setPending(meetingID uuid.UUID, pend pendingResult) {
	s.mu.Lock()
	s.pending[meetingID] = pend
	s.mu.Unlock()
}

func (s *trackerService) clearPending(meetingID uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, meetingID)
	s.mu.Unlock()
}

// persistSnapshot saves tracker state best-effort. Failures are logged
// and suppressed so live cost computation never blocks on the store.
func (s *trackerService) persistSnapshot(t *Tracker) {
	if s.snapshots == nil {
		return
	}
	snap := t.Snapshot(s.clock.Now())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.snapshots.Save(ctx, snap); err != nil && s.logger != nil {
			s.logger.Warn("Snapshot persistence failed",
				zap.String("meeting_id", snap.MeetingID.String()),
				zap.Error(err),
			)
		}
	}()
}

func (s *trackerService) deleteSnapshot(meetingID uuid.UUID) {
	if s.snapshots == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.snapshots.Delete(ctx, meetingID); err != nil && s.logger != nil {
			s.logger.Warn("Snapshot cleanup failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}()
}

func (s *trackerService) archive(cost *entities.MeetingCost, analytics *entities.MeetingAnalytics) {
	if s.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.archiver.ArchiveCost(ctx, cost, analytics); err != nil && s.logger != nil {
			s.logger.Warn("Cost archive upload failed",
				zap.String("meeting_id", cost.MeetingID.String()),
				zap.Error(err),
			)
		}
	}()
}
