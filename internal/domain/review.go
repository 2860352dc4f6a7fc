package domain

import "time"

type Review struct {
	ID              int64     `json:"id"`
	SessionID       int64     `json:"session_id" gorm:"uniqueIndex"`
	MentorProfileID int64     `json:"mentor_profile_id" gorm:"index"`
	MenteeUserID    int64     `json:"mentee_user_id" gorm:"index"`
	Rating          int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment         string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Mentee *User `json:"mentee,omitempty" gorm:"foreignKey:MenteeUserID"`
}

func (Review) TableName() string { return "reviews" }
