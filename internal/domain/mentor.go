package domain

import "time"

type MentorProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id" gorm:"uniqueIndex"`
	Headline        string    `json:"headline,omitempty"`
	Bio             string    `json:"bio,omitempty" gorm:"type:text"`
	HourlyRate      float64   `json:"hourly_rate"`
	YearsExperience int       `json:"years_experience"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Skills []Skill `json:"skills,omitempty" gorm:"many2many:mentor_skills"`
}

func (MentorProfile) TableName() string { return "mentor_profiles" }

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name" gorm:"uniqueIndex" validate:"required"`
	Slug string `json:"slug" gorm:"uniqueIndex"`
}

func (Skill) TableName() string { return "skills" }

type Listing struct {
	ID              int64     `json:"id"`
	MentorProfileID int64     `json:"mentor_profile_id" gorm:"index"`
	SkillID         int64     `json:"skill_id"`
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description,omitempty" gorm:"type:text"`
	PricePerHour    float64   `json:"price_per_hour" validate:"gte=0"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	MentorProfile *MentorProfile `json:"mentor_profile,omitempty" gorm:"foreignKey:MentorProfileID"`
	Skill         *Skill         `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
}

func (Listing) TableName() string { return "listings" }
