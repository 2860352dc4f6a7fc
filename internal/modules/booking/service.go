package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
	"mentorhub/internal/events"
)

// Actor is the resolved caller of a booking operation. MentorProfileID is zero
// for callers without a mentor profile.
type Actor struct {
	UserID          int64
	MentorProfileID int64
}

type Service struct {
	bookings      BookingRepository
	sessions      SessionCreator
	listings      ListingReader
	mentors       MentorReader
	availability  AvailabilityChecker
	notifications NotificationSender
	publisher     EventPublisher
	logger        *zap.Logger
}

func NewService(
	bookings BookingRepository,
	sessions SessionCreator,
	listings ListingReader,
	mentors MentorReader,
	availability AvailabilityChecker,
	notifications NotificationSender,
	publisher EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		bookings:      bookings,
		sessions:      sessions,
		listings:      listings,
		mentors:       mentors,
		availability:  availability,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger,
	}
}

// Create places a booking request against an active listing. The end time is
// derived from the listing duration, so a mentee can never request a slot
// shorter or longer than the listing offers.
func (s *Service) Create(ctx context.Context, menteeUserID int64, req CreateBookingRequest) (*domain.Booking, error) {
	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return nil, err
	}
	if !listing.IsActive {
		return nil, fmt.Errorf("%w: listing is not active", ErrValidation)
	}

	mentor, err := s.mentors.GetByID(ctx, listing.MentorProfileID)
	if err != nil {
		return nil, err
	}
	if mentor.UserID == menteeUserID {
		return nil, fmt.Errorf("%w: cannot book your own listing", ErrValidation)
	}

	start := req.StartTime.UTC()
	if !start.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: start time must be in the future", ErrValidation)
	}
	end := start.Add(time.Duration(listing.DurationMinutes) * time.Minute)

	bookable, err := s.availability.IsBookable(ctx, listing.MentorProfileID, start, end)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, ErrNotAvailable
	}

	overlap, err := s.bookings.HasOverlap(ctx, listing.MentorProfileID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("%w: slot already taken", ErrNotAvailable)
	}

	b := &domain.Booking{
		ListingID:       listing.ID,
		MentorProfileID: listing.MentorProfileID,
		MenteeUserID:    menteeUserID,
		StartTime:       start,
		EndTime:         end,
		Status:          domain.BookingRequested,
		Note:            req.Note,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if isStoreConflict(err) {
			return nil, fmt.Errorf("%w: slot already taken", ErrNotAvailable)
		}
		return nil, err
	}

	if err := s.notifications.NotifyBookingRequested(ctx, mentor.UserID, b.ID, b.StartTime); err != nil {
		s.logger.Warn("booking requested notification failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
	s.publish(events.KeyBookingRequested, b)

	return b, nil
}

// Accept moves a requested booking to accepted and schedules its session. The
// guarded status update and the session insert run in one transaction, so a
// booking observed as accepted always has exactly one session and a lost race
// leaves no half-applied state behind.
func (s *Service) Accept(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, *domain.Session, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if actor.MentorProfileID == 0 || actor.MentorProfileID != b.MentorProfileID {
		return nil, nil, ErrForbidden
	}
	if !b.Status.IsPending() {
		return nil, nil, fmt.Errorf("%w: booking is %s", ErrInvalidStatusTransition, b.Status)
	}

	session := &domain.Session{
		BookingID:       b.ID,
		MentorProfileID: b.MentorProfileID,
		MenteeUserID:    b.MenteeUserID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          domain.SessionScheduled,
	}

	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		n, err := s.bookings.UpdateStatusIf(ctx, tx, b.ID, domain.BookingRequested, domain.BookingAccepted)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: booking is no longer pending", ErrInvalidStatusTransition)
		}
		return s.sessions.Create(ctx, tx, session)
	})
	if err != nil {
		if isStoreConflict(err) {
			return nil, nil, fmt.Errorf("%w: booking already has a session", ErrInvalidStatusTransition)
		}
		return nil, nil, err
	}
	b.Status = domain.BookingAccepted

	if err := s.notifications.NotifyBookingAccepted(ctx, b.MenteeUserID, b.ID, session.ID); err != nil {
		s.logger.Warn("booking accepted notification failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
	s.publish(events.KeyBookingAccepted, map[string]any{
		"booking_id": b.ID,
		"session_id": session.ID,
	})

	return b, session, nil
}

// Decline moves a requested booking to declined. No session is created.
func (s *Service) Decline(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actor.MentorProfileID == 0 || actor.MentorProfileID != b.MentorProfileID {
		return nil, ErrForbidden
	}
	if !b.Status.IsPending() {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidStatusTransition, b.Status)
	}

	n, err := s.bookings.UpdateStatusIf(ctx, nil, b.ID, domain.BookingRequested, domain.BookingDeclined)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: booking is no longer pending", ErrInvalidStatusTransition)
	}
	b.Status = domain.BookingDeclined

	if err := s.notifications.NotifyBookingDeclined(ctx, b.MenteeUserID, b.ID); err != nil {
		s.logger.Warn("booking declined notification failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
	s.publish(events.KeyBookingDeclined, b)

	return b, nil
}

// Cancel withdraws a requested booking. Either party may cancel while the
// booking is still pending; an accepted booking cannot be cancelled here.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isMentee := b.MenteeUserID == actor.UserID
	isMentor := actor.MentorProfileID != 0 && actor.MentorProfileID == b.MentorProfileID
	if !isMentee && !isMentor {
		return nil, ErrForbidden
	}
	if !b.Status.IsPending() {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidStatusTransition, b.Status)
	}

	n, err := s.bookings.UpdateStatusIf(ctx, nil, b.ID, domain.BookingRequested, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: booking is no longer pending", ErrInvalidStatusTransition)
	}
	b.Status = domain.BookingCancelled

	// Tell the other party, not the one who cancelled.
	counterparty := b.MenteeUserID
	if isMentee {
		if mentor, merr := s.mentors.GetByID(ctx, b.MentorProfileID); merr == nil {
			counterparty = mentor.UserID
		} else {
			counterparty = 0
		}
	}
	if counterparty != 0 {
		if err := s.notifications.NotifyBookingCancelled(ctx, counterparty, b.ID); err != nil {
			s.logger.Warn("booking cancelled notification failed", zap.Int64("booking_id", b.ID), zap.Error(err))
		}
	}
	s.publish(events.KeyBookingCancelled, b)

	return b, nil
}

// GetForActor fetches one booking, visible only to its two parties. Outsiders
// get not found rather than forbidden so booking IDs are not probeable.
func (s *Service) GetForActor(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.MenteeUserID != actor.UserID && (actor.MentorProfileID == 0 || actor.MentorProfileID != b.MentorProfileID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListForMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Booking, error) {
	limit = clampLimit(limit)
	return s.bookings.ListByMentee(ctx, menteeUserID, limit, offset)
}

func (s *Service) ListForMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Booking, error) {
	limit = clampLimit(limit)
	return s.bookings.ListByMentor(ctx, mentorProfileID, limit, offset)
}

func (s *Service) publish(key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(key, payload); err != nil {
		s.logger.Warn("event publish failed", zap.String("routing_key", key), zap.Error(err))
	}
}

// isStoreConflict reports whether err is the database rejecting a write that
// would break a booking constraint: the overlap exclusion on bookings
// (23P01) or the unique index on sessions.booking_id (23505).
func isStoreConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
