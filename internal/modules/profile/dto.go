package profile

import (
	"time"

	"mentorhub/internal/domain"
)

type UpdateProfileRequest struct {
	Headline        *string  `json:"headline" validate:"omitempty,max=200"`
	Bio             *string  `json:"bio" validate:"omitempty,max=4000"`
	HourlyRate      *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,gte=0,lte=80"`
}

type AttachSkillRequest struct {
	SkillID int64 `json:"skill_id" validate:"required,gt=0"`
}

type ProfileResponse struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Name            string         `json:"name,omitempty"`
	AvatarURL       string         `json:"avatar_url,omitempty"`
	Headline        string         `json:"headline,omitempty"`
	Bio             string         `json:"bio,omitempty"`
	HourlyRate      float64        `json:"hourly_rate"`
	YearsExperience int            `json:"years_experience"`
	Rating          float64        `json:"rating"`
	ReviewCount     int            `json:"review_count"`
	Skills          []domain.Skill `json:"skills,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toProfileResponse(p *domain.MentorProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Headline:        p.Headline,
		Bio:             p.Bio,
		HourlyRate:      p.HourlyRate,
		YearsExperience: p.YearsExperience,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Skills:          p.Skills,
		CreatedAt:       p.CreatedAt,
	}
	if p.User != nil {
		resp.Name = p.User.Name
		resp.AvatarURL = p.User.AvatarURL
	}
	return resp
}

func toProfileResponses(profiles []domain.MentorProfile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, toProfileResponse(&profiles[i]))
	}
	return out
}
