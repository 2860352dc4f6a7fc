package payment

import (
	"context"
	"time"

	"mentorhub/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	MarkPaidIf(ctx context.Context, paymentID int64, at time.Time) (int64, error)
	MarkFailed(ctx context.Context, paymentID int64) error
	ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Payment, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type MentorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
}

type NotificationSender interface {
	NotifyPaymentReceived(ctx context.Context, mentorUserID, bookingID int64, amount float64) error
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
