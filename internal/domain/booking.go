package domain

import "time"

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
)

// IsPending reports whether the booking can still be accepted, declined or
// cancelled. Only requested bookings are mutable.
func (s BookingStatus) IsPending() bool { return s == BookingRequested }

type Booking struct {
	ID              int64         `json:"id"`
	ListingID       int64         `json:"listing_id" gorm:"index"`
	MentorProfileID int64         `json:"mentor_profile_id" gorm:"index"`
	MenteeUserID    int64         `json:"mentee_user_id" gorm:"index"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	Status          BookingStatus `json:"status"`
	Note            string        `json:"note,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Listing       *Listing       `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	MentorProfile *MentorProfile `json:"mentor_profile,omitempty" gorm:"foreignKey:MentorProfileID"`
	Mentee        *User          `json:"mentee,omitempty" gorm:"foreignKey:MenteeUserID"`
}

func (Booking) TableName() string { return "bookings" }
