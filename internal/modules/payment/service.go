package payment

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
	"mentorhub/internal/events"
)

const defaultCurrency = "USD"

type Service struct {
	payments      PaymentRepository
	bookings      BookingReader
	listings      ListingReader
	mentors       MentorReader
	notifications NotificationSender
	publisher     EventPublisher
	secret        string
	logger        *zap.Logger
}

func NewService(
	payments PaymentRepository,
	bookings BookingReader,
	listings ListingReader,
	mentors MentorReader,
	notifications NotificationSender,
	publisher EventPublisher,
	secret string,
	logger *zap.Logger,
) *Service {
	return &Service{
		payments:      payments,
		bookings:      bookings,
		listings:      listings,
		mentors:       mentors,
		notifications: notifications,
		publisher:     publisher,
		secret:        secret,
		logger:        logger,
	}
}

// Init creates a pending payment for an accepted booking. Calling it again for
// the same booking returns the existing payment instead of a duplicate.
func (s *Service) Init(ctx context.Context, menteeUserID int64, req InitPaymentRequest) (*InitPaymentResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.MenteeUserID != menteeUserID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingAccepted {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidState, b.Status)
	}

	if existing, err := s.payments.GetByBookingID(ctx, req.BookingID); err == nil {
		return s.initResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	listing, err := s.listings.GetByID(ctx, b.ListingID)
	if err != nil {
		return nil, err
	}
	amount := listing.PricePerHour * b.EndTime.Sub(b.StartTime).Hours()

	p := &domain.Payment{
		BookingID:      b.ID,
		MenteeUserID:   menteeUserID,
		Amount:         amount,
		Currency:       defaultCurrency,
		Status:         domain.PaymentPending,
		IdempotencyKey: uuid.NewString(),
		InvID:          time.Now().UnixNano(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return s.initResponse(p), nil
}

// HandleCallback processes the provider's payment confirmation. The signature
// check rejects forged callbacks, the guarded update absorbs replays.
func (s *Service) HandleCallback(ctx context.Context, req CallbackRequest) error {
	p, err := s.payments.GetByInvID(ctx, req.InvID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !strings.EqualFold(req.Signature, s.signature(p.Amount, p.InvID)) {
		return ErrInvalidSignature
	}

	n, err := s.payments.MarkPaidIf(ctx, p.ID, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		// Replayed callback, the payment is already settled.
		return nil
	}

	if b, berr := s.bookings.GetByID(ctx, p.BookingID); berr == nil {
		if mentor, merr := s.mentors.GetByID(ctx, b.MentorProfileID); merr == nil {
			if nerr := s.notifications.NotifyPaymentReceived(ctx, mentor.UserID, b.ID, p.Amount); nerr != nil {
				s.logger.Warn("payment notification failed", zap.Int64("payment_id", p.ID), zap.Error(nerr))
			}
		}
	}
	if s.publisher != nil {
		if perr := s.publisher.Publish(events.KeyPaymentReceived, map[string]any{
			"payment_id": p.ID,
			"booking_id": p.BookingID,
			"amount":     p.Amount,
		}); perr != nil {
			s.logger.Warn("event publish failed", zap.String("routing_key", events.KeyPaymentReceived), zap.Error(perr))
		}
	}

	return nil
}

func (s *Service) GetForBooking(ctx context.Context, menteeUserID, bookingID int64) (*domain.Payment, error) {
	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.MenteeUserID != menteeUserID {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) History(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.payments.ListByMentee(ctx, menteeUserID, limit, offset)
}

func (s *Service) initResponse(p *domain.Payment) *InitPaymentResponse {
	return &InitPaymentResponse{
		PaymentID: p.ID,
		InvID:     p.InvID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Signature: s.signature(p.Amount, p.InvID),
	}
}

func (s *Service) signature(amount float64, invID int64) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(fmt.Sprintf("%.2f:%d:%s", amount, invID, s.secret))))
}
