package notification

import (
	"context"
	"fmt"
	"time"

	"mentorhub/internal/domain"
)

type Service struct {
	repo NotificationRepository
	hub  *Hub
}

func NewService(repo NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		IsRead:  false,
	}
	if err := s.repo.Create(ctx, n, data); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Push(userID, n)
	}
	return nil
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) NotifyBookingRequested(ctx context.Context, mentorUserID, bookingID int64, start time.Time) error {
	return s.Create(
		ctx,
		mentorUserID,
		domain.NotifBookingRequested,
		"New booking request",
		fmt.Sprintf("You have a new booking request for %s", start.Format("02.01.2006 15:04")),
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingAccepted(ctx context.Context, menteeUserID, bookingID, sessionID int64) error {
	return s.Create(
		ctx,
		menteeUserID,
		domain.NotifBookingAccepted,
		"Booking accepted",
		"Your booking was accepted and a session has been scheduled",
		map[string]any{"booking_id": bookingID, "session_id": sessionID},
	)
}

func (s *Service) NotifyBookingDeclined(ctx context.Context, menteeUserID, bookingID int64) error {
	return s.Create(
		ctx,
		menteeUserID,
		domain.NotifBookingDeclined,
		"Booking declined",
		"Your booking was declined by the mentor",
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifBookingCancelled,
		"Booking cancelled",
		"A booking you are part of was cancelled",
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifySessionCompleted(ctx context.Context, menteeUserID, sessionID int64) error {
	return s.Create(
		ctx,
		menteeUserID,
		domain.NotifSessionCompleted,
		"Session completed",
		"Your session is complete. You can now leave a review",
		map[string]any{"session_id": sessionID},
	)
}

func (s *Service) NotifySessionReminder(ctx context.Context, userID, sessionID int64, start time.Time) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifSessionReminder,
		"Upcoming session",
		fmt.Sprintf("Your session starts at %s", start.Format("15:04")),
		map[string]any{"session_id": sessionID},
	)
}

func (s *Service) NotifyPaymentReceived(ctx context.Context, mentorUserID, bookingID int64, amount float64) error {
	return s.Create(
		ctx,
		mentorUserID,
		domain.NotifPaymentReceived,
		"Payment received",
		fmt.Sprintf("A payment of %.2f was received for your booking", amount),
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyNewReview(ctx context.Context, mentorUserID, reviewID int64, rating int) error {
	return s.Create(
		ctx,
		mentorUserID,
		domain.NotifNewReview,
		"New review",
		fmt.Sprintf("You received a new %d-star review", rating),
		map[string]any{"review_id": reviewID},
	)
}
