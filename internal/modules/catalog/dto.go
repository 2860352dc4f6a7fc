package catalog

import (
	"time"

	"mentorhub/internal/domain"
)

type CreateSkillRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateListingRequest struct {
	SkillID         int64   `json:"skill_id" validate:"required,gt=0"`
	Title           string  `json:"title" validate:"required,min=3,max=200"`
	Description     string  `json:"description" validate:"omitempty,max=4000"`
	PricePerHour    float64 `json:"price_per_hour" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=15,lte=480"`
}

type UpdateListingRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=4000"`
	PricePerHour    *float64 `json:"price_per_hour" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gte=15,lte=480"`
	IsActive        *bool    `json:"is_active"`
}

type ListingResponse struct {
	ID              int64         `json:"id"`
	MentorProfileID int64         `json:"mentor_profile_id"`
	Skill           *domain.Skill `json:"skill,omitempty"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	PricePerHour    float64       `json:"price_per_hour"`
	DurationMinutes int           `json:"duration_minutes"`
	IsActive        bool          `json:"is_active"`
	MentorName      string        `json:"mentor_name,omitempty"`
	MentorRating    float64       `json:"mentor_rating,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func toListingResponse(l *domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:              l.ID,
		MentorProfileID: l.MentorProfileID,
		Skill:           l.Skill,
		Title:           l.Title,
		Description:     l.Description,
		PricePerHour:    l.PricePerHour,
		DurationMinutes: l.DurationMinutes,
		IsActive:        l.IsActive,
		CreatedAt:       l.CreatedAt,
	}
	if l.MentorProfile != nil {
		resp.MentorRating = l.MentorProfile.Rating
		if l.MentorProfile.User != nil {
			resp.MentorName = l.MentorProfile.User.Name
		}
	}
	return resp
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, toListingResponse(&listings[i]))
	}
	return out
}
