package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts a session. Runs on tx when given so acceptance can pair the
// booking update and the session insert in one transaction. The unique index
// on booking_id rejects a second session for the same booking.
func (r *SessionRepository) Create(ctx context.Context, tx *gorm.DB, s *domain.Session) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Session, error) {
	var s domain.Session
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStatusIf is the compare-and-swap behind session transitions: the
// update only lands when the row still carries the expected status, so two
// racing callers cannot both advance the same session.
func (r *SessionRepository) UpdateStatusIf(ctx context.Context, sessionID int64, expected, next domain.SessionStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND status = ?", sessionID, expected).
		Update("status", next)
	return res.RowsAffected, res.Error
}

func (r *SessionRepository) SetReviewEligible(ctx context.Context, sessionID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", sessionID).
		Update("review_eligible", true).Error
}

func (r *SessionRepository) ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Preload("MentorProfile").
		Preload("MentorProfile.User").
		Where("mentee_user_id = ?", menteeUserID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Preload("Mentee").
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}

// DueForReminder returns scheduled sessions starting inside (from, to] that
// have not been reminded yet.
func (r *SessionRepository) DueForReminder(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Preload("MentorProfile").
		Where("status = ?", domain.SessionScheduled).
		Where("start_time > ? AND start_time <= ?", from, to).
		Where("reminder_sent_at IS NULL").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) MarkReminderSent(ctx context.Context, sessionID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", sessionID).
		Update("reminder_sent_at", at).Error
}
