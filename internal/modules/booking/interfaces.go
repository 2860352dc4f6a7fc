package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

// BookingRepository is the storage surface the service depends on.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, bookingID int64, expected, next domain.BookingStatus) (int64, error)
	HasOverlap(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error)
	ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Booking, error)
	ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Booking, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SessionCreator inserts the session that acceptance schedules. It shares the
// acceptance transaction so the booking update and the insert land together.
type SessionCreator interface {
	Create(ctx context.Context, tx *gorm.DB, s *domain.Session) error
}

type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type MentorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
}

// AvailabilityChecker reports whether the requested slot falls inside the
// mentor's published availability and outside any time off.
type AvailabilityChecker interface {
	IsBookable(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error)
}

type NotificationSender interface {
	NotifyBookingRequested(ctx context.Context, mentorUserID, bookingID int64, start time.Time) error
	NotifyBookingAccepted(ctx context.Context, menteeUserID, bookingID, sessionID int64) error
	NotifyBookingDeclined(ctx context.Context, menteeUserID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
