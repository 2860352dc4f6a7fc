package session

import (
	"encoding/json"
	"time"

	"mentorhub/internal/domain"
)

type SessionResponse struct {
	ID              int64           `json:"id"`
	BookingID       int64           `json:"booking_id"`
	MentorProfileID int64           `json:"mentor_profile_id"`
	MenteeUserID    int64           `json:"mentee_user_id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	ReviewEligible  bool            `json:"review_eligible"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		BookingID:       s.BookingID,
		MentorProfileID: s.MentorProfileID,
		MenteeUserID:    s.MenteeUserID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Status:          string(s.Status),
		Notes:           s.Notes,
		Metadata:        s.Metadata,
		ReviewEligible:  s.ReviewEligible,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toSessionResponses(sessions []domain.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out
}
