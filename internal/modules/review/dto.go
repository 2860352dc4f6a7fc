package review

import (
	"time"

	"mentorhub/internal/domain"
)

type CreateReviewRequest struct {
	SessionID int64  `json:"session_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"omitempty,max=4000"`
}

type ReviewResponse struct {
	ID              int64     `json:"id"`
	SessionID       int64     `json:"session_id"`
	MentorProfileID int64     `json:"mentor_profile_id"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment,omitempty"`
	MenteeName      string    `json:"mentee_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:              r.ID,
		SessionID:       r.SessionID,
		MentorProfileID: r.MentorProfileID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		CreatedAt:       r.CreatedAt,
	}
	if r.Mentee != nil {
		resp.MenteeName = r.Mentee.Name
	}
	return resp
}

func toReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}
