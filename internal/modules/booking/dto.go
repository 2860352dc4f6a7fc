package booking

import (
	"time"

	"mentorhub/internal/domain"
)

type CreateBookingRequest struct {
	ListingID int64     `json:"listing_id" validate:"required,gt=0"`
	StartTime time.Time `json:"start_time" validate:"required"`
	Note      string    `json:"note" validate:"max=1000"`
}

type BookingResponse struct {
	ID              int64     `json:"id"`
	ListingID       int64     `json:"listing_id"`
	MentorProfileID int64     `json:"mentor_profile_id"`
	MenteeUserID    int64     `json:"mentee_user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AcceptBookingResponse carries both sides of a successful acceptance: the
// accepted booking and the session scheduled for it.
type AcceptBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Session SessionSummary  `json:"session"`
}

type SessionSummary struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		ListingID:       b.ListingID,
		MentorProfileID: b.MentorProfileID,
		MenteeUserID:    b.MenteeUserID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		Note:            b.Note,
		CreatedAt:       b.CreatedAt,
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

func toSessionSummary(s *domain.Session) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		BookingID: s.BookingID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
	}
}
