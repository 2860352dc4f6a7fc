package domain

import "time"

// AvailabilityRule is a weekly recurring window during which a mentor takes
// bookings. Times are "15:04" strings in UTC, same encoding the bookings use.
type AvailabilityRule struct {
	ID              int64     `json:"id"`
	MentorProfileID int64     `json:"mentor_profile_id" gorm:"index"`
	Weekday         int       `json:"weekday" validate:"gte=0,lte=6"`
	OpenTime        string    `json:"open_time"`
	CloseTime       string    `json:"close_time"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (AvailabilityRule) TableName() string { return "availability_rules" }

// TimeOff blocks a concrete range regardless of the weekly rules.
type TimeOff struct {
	ID              int64     `json:"id"`
	MentorProfileID int64     `json:"mentor_profile_id" gorm:"index"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Reason          string    `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (TimeOff) TableName() string { return "time_off" }
