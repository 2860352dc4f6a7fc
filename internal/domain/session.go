package domain

import (
	"encoding/json"
	"time"
)

type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// sessionOrder gives the strict forward ordering of session statuses.
var sessionOrder = map[SessionStatus]int{
	SessionScheduled:  0,
	SessionInProgress: 1,
	SessionCompleted:  2,
}

// CanTransition reports whether moving from s to next is a legal single step.
// Skipping a status and moving backwards are both illegal; completed is terminal.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	from, ok := sessionOrder[s]
	if !ok {
		return false
	}
	to, ok := sessionOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Session is the meeting derived from an accepted booking. Exactly one session
// exists per booking, its time range stays identical to the booking's for its
// entire lifetime, and it is never deleted.
type Session struct {
	ID              int64           `json:"id"`
	BookingID       int64           `json:"booking_id" gorm:"uniqueIndex"`
	MentorProfileID int64           `json:"mentor_profile_id" gorm:"index"`
	MenteeUserID    int64           `json:"mentee_user_id" gorm:"index"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Status          SessionStatus   `json:"status"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`
	Metadata        json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
	ReviewEligible  bool            `json:"review_eligible"`
	ReminderSentAt  *time.Time      `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Booking       *Booking       `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	MentorProfile *MentorProfile `json:"mentor_profile,omitempty" gorm:"foreignKey:MentorProfileID"`
	Mentee        *User          `json:"mentee,omitempty" gorm:"foreignKey:MenteeUserID"`
}

func (Session) TableName() string { return "sessions" }
