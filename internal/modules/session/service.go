package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
	"mentorhub/internal/events"
)

// Actor is the resolved caller of a session operation. MentorProfileID is zero
// for callers without a mentor profile.
type Actor struct {
	UserID          int64
	MentorProfileID int64
}

type Service struct {
	sessions      SessionRepository
	notifications NotificationSender
	publisher     EventPublisher
	logger        *zap.Logger
}

func NewService(sessions SessionRepository, notifications NotificationSender, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		sessions:      sessions,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger,
	}
}

// Start moves a scheduled session to in progress. Either party of the session
// may start it. The guarded update makes the transition race-safe: of two
// concurrent starts exactly one wins and the other gets an invalid transition.
func (s *Service) Start(ctx context.Context, sessionID int64, actor Actor) (*domain.Session, error) {
	sess, err := s.getOwned(ctx, sessionID, actor)
	if err != nil {
		return nil, err
	}

	if !sess.Status.CanTransition(domain.SessionInProgress) {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidStatusTransition, sess.Status)
	}

	n, err := s.sessions.UpdateStatusIf(ctx, sess.ID, domain.SessionScheduled, domain.SessionInProgress)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: session is no longer scheduled", ErrInvalidStatusTransition)
	}
	sess.Status = domain.SessionInProgress

	s.publish(events.KeySessionStarted, map[string]any{
		"session_id": sess.ID,
		"booking_id": sess.BookingID,
	})

	return sess, nil
}

// Complete moves an in-progress session to completed. Only the mentor who owns
// the session may complete it. Completion unlocks the review flow and notifies
// the mentee; both side effects are best-effort and never undo the transition.
func (s *Service) Complete(ctx context.Context, sessionID int64, actor Actor) (*domain.Session, error) {
	sess, err := s.getOwned(ctx, sessionID, actor)
	if err != nil {
		return nil, err
	}

	if actor.MentorProfileID == 0 || actor.MentorProfileID != sess.MentorProfileID {
		return nil, ErrForbidden
	}
	if !sess.Status.CanTransition(domain.SessionCompleted) {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidStatusTransition, sess.Status)
	}

	n, err := s.sessions.UpdateStatusIf(ctx, sess.ID, domain.SessionInProgress, domain.SessionCompleted)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: session is no longer in progress", ErrInvalidStatusTransition)
	}
	sess.Status = domain.SessionCompleted

	if err := s.sessions.SetReviewEligible(ctx, sess.ID); err != nil {
		s.logger.Warn("failed to mark session review eligible", zap.Int64("session_id", sess.ID), zap.Error(err))
	} else {
		sess.ReviewEligible = true
	}

	if err := s.notifications.NotifySessionCompleted(ctx, sess.MenteeUserID, sess.ID); err != nil {
		s.logger.Warn("session completed notification failed", zap.Int64("session_id", sess.ID), zap.Error(err))
	}
	s.publish(events.KeySessionCompleted, map[string]any{
		"session_id": sess.ID,
		"booking_id": sess.BookingID,
	})

	return sess, nil
}

// GetForActor fetches one session, visible only to its two parties. Outsiders
// get not found rather than forbidden so session IDs are not probeable.
func (s *Service) GetForActor(ctx context.Context, sessionID int64, actor Actor) (*domain.Session, error) {
	return s.getOwned(ctx, sessionID, actor)
}

// GetByBookingID fetches the session scheduled for a booking, applying the
// same party check as GetForActor.
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64, actor Actor) (*domain.Session, error) {
	sess, err := s.sessions.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isParty(sess, actor) {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Service) ListForMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Session, error) {
	limit = clampLimit(limit)
	return s.sessions.ListByMentee(ctx, menteeUserID, limit, offset)
}

func (s *Service) ListForMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Session, error) {
	limit = clampLimit(limit)
	return s.sessions.ListByMentor(ctx, mentorProfileID, limit, offset)
}

func (s *Service) getOwned(ctx context.Context, sessionID int64, actor Actor) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isParty(sess, actor) {
		return nil, ErrNotFound
	}
	return sess, nil
}

func isParty(sess *domain.Session, actor Actor) bool {
	if sess.MenteeUserID == actor.UserID {
		return true
	}
	return actor.MentorProfileID != 0 && actor.MentorProfileID == sess.MentorProfileID
}

func (s *Service) publish(key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(key, payload); err != nil {
		s.logger.Warn("event publish failed", zap.String("routing_key", key), zap.Error(err))
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
