package availability

import "time"

type CreateRuleRequest struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time" validate:"required"`
	CloseTime string `json:"close_time" validate:"required"`
}

type CreateTimeOffRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Reason    string    `json:"reason" validate:"omitempty,max=500"`
}

// Slot is one bookable window offered to mentees.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
