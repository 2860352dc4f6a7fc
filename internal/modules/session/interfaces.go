package session

import (
	"context"

	"mentorhub/internal/domain"
)

// SessionRepository is the storage surface the service depends on.
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Session, error)
	UpdateStatusIf(ctx context.Context, sessionID int64, expected, next domain.SessionStatus) (int64, error)
	SetReviewEligible(ctx context.Context, sessionID int64) error
	ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Session, error)
	ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Session, error)
}

type NotificationSender interface {
	NotifySessionCompleted(ctx context.Context, menteeUserID, sessionID int64) error
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
