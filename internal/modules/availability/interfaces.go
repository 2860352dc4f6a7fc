package availability

import (
	"context"
	"time"

	"mentorhub/internal/domain"
)

type AvailabilityRepository interface {
	CreateRule(ctx context.Context, rule *domain.AvailabilityRule) error
	DeleteRule(ctx context.Context, mentorProfileID, ruleID int64) error
	RulesForMentor(ctx context.Context, mentorProfileID int64) ([]domain.AvailabilityRule, error)
	RulesForWeekday(ctx context.Context, mentorProfileID int64, weekday int) ([]domain.AvailabilityRule, error)
	CreateTimeOff(ctx context.Context, t *domain.TimeOff) error
	DeleteTimeOff(ctx context.Context, mentorProfileID, timeOffID int64) error
	TimeOffInRange(ctx context.Context, mentorProfileID int64, from, to time.Time) ([]domain.TimeOff, error)
}

// BookingReader supplies the accepted bookings that occupy slots.
type BookingReader interface {
	AcceptedInRange(ctx context.Context, mentorProfileID int64, from, to time.Time) ([]domain.Booking, error)
}
