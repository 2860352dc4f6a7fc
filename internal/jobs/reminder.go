package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mentorhub/internal/domain"
)

// reminderWindow is how far ahead the job looks for upcoming sessions.
const reminderWindow = time.Hour

type SessionRepository interface {
	DueForReminder(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	MarkReminderSent(ctx context.Context, sessionID int64, at time.Time) error
}

type ReminderNotifier interface {
	NotifySessionReminder(ctx context.Context, userID, sessionID int64, start time.Time) error
}

// Scheduler runs the periodic background jobs.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionRepository
	notifier ReminderNotifier
	logger   *zap.Logger
}

func NewScheduler(sessions SessionRepository, notifier ReminderNotifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", s.runReminders); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("job scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("job scheduler stopped")
}

// runReminders notifies both parties of sessions starting within the window.
// MarkReminderSent keeps the next tick from notifying the same session again.
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	sessions, err := s.sessions.DueForReminder(ctx, now, now.Add(reminderWindow))
	if err != nil {
		s.logger.Error("reminder query failed", zap.Error(err))
		return
	}

	for _, sess := range sessions {
		if err := s.notifier.NotifySessionReminder(ctx, sess.MenteeUserID, sess.ID, sess.StartTime); err != nil {
			s.logger.Warn("mentee reminder failed", zap.Int64("session_id", sess.ID), zap.Error(err))
		}
		if sess.MentorProfile != nil && sess.MentorProfile.UserID != 0 {
			if err := s.notifier.NotifySessionReminder(ctx, sess.MentorProfile.UserID, sess.ID, sess.StartTime); err != nil {
				s.logger.Warn("mentor reminder failed", zap.Int64("session_id", sess.ID), zap.Error(err))
			}
		}
		if err := s.sessions.MarkReminderSent(ctx, sess.ID, now); err != nil {
			s.logger.Warn("failed to mark reminder sent", zap.Int64("session_id", sess.ID), zap.Error(err))
		}
	}

	if len(sessions) > 0 {
		s.logger.Info("session reminders sent", zap.Int("count", len(sessions)))
	}
}
