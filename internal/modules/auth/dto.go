package auth

import "mentorhub/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=mentee mentor"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Timezone string `json:"timezone" validate:"omitempty,max=64"`

	// Mentor-only fields, used when role is mentor.
	Headline   string  `json:"headline" validate:"omitempty,max=200"`
	Bio        string  `json:"bio" validate:"omitempty,max=4000"`
	HourlyRate float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
	MentorProfileID int64  `json:"mentor_profile_id,omitempty"`
}

func toUserResponse(u *domain.User, mentorProfileID int64) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		Phone:           u.Phone,
		AvatarURL:       u.AvatarURL,
		Timezone:        u.Timezone,
		MentorProfileID: mentorProfileID,
	}
}
