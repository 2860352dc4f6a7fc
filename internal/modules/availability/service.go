package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mentorhub/internal/domain"
)

const timeLayout = "15:04"

type Service struct {
	availability AvailabilityRepository
	bookings     BookingReader
}

func NewService(availability AvailabilityRepository, bookings BookingReader) *Service {
	return &Service{availability: availability, bookings: bookings}
}

func (s *Service) CreateRule(ctx context.Context, mentorProfileID int64, req CreateRuleRequest) (*domain.AvailabilityRule, error) {
	open, err := time.Parse(timeLayout, req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: open_time must be HH:MM", ErrValidation)
	}
	closeT, err := time.Parse(timeLayout, req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: close_time must be HH:MM", ErrValidation)
	}
	if !closeT.After(open) {
		return nil, fmt.Errorf("%w: close_time must be after open_time", ErrValidation)
	}

	rule := &domain.AvailabilityRule{
		MentorProfileID: mentorProfileID,
		Weekday:         req.Weekday,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
	}
	if err := s.availability.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) DeleteRule(ctx context.Context, mentorProfileID, ruleID int64) error {
	if err := s.availability.DeleteRule(ctx, mentorProfileID, ruleID); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Rules(ctx context.Context, mentorProfileID int64) ([]domain.AvailabilityRule, error) {
	return s.availability.RulesForMentor(ctx, mentorProfileID)
}

func (s *Service) CreateTimeOff(ctx context.Context, mentorProfileID int64, req CreateTimeOffRequest) (*domain.TimeOff, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}

	off := &domain.TimeOff{
		MentorProfileID: mentorProfileID,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		Reason:          req.Reason,
	}
	if err := s.availability.CreateTimeOff(ctx, off); err != nil {
		return nil, err
	}
	return off, nil
}

func (s *Service) DeleteTimeOff(ctx context.Context, mentorProfileID, timeOffID int64) error {
	if err := s.availability.DeleteTimeOff(ctx, mentorProfileID, timeOffID); err != nil {
		return ErrNotFound
	}
	return nil
}

// IsBookable reports whether [start, end) lies inside one of the mentor's
// weekly windows and clear of any time off. Overlapping bookings are checked
// by the caller; this only answers whether the mentor offers the slot at all.
func (s *Service) IsBookable(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error) {
	start = start.UTC()
	end = end.UTC()

	// Slots never span midnight, the weekly windows can't express that.
	if start.YearDay() != end.YearDay() || start.Year() != end.Year() {
		return false, nil
	}

	rules, err := s.availability.RulesForWeekday(ctx, mentorProfileID, int(start.Weekday()))
	if err != nil {
		return false, err
	}

	inWindow := false
	for _, rule := range rules {
		open, cerr := ruleTime(start, rule.OpenTime)
		if cerr != nil {
			continue
		}
		closeT, cerr := ruleTime(start, rule.CloseTime)
		if cerr != nil {
			continue
		}
		if !start.Before(open) && !end.After(closeT) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false, nil
	}

	offs, err := s.availability.TimeOffInRange(ctx, mentorProfileID, start, end)
	if err != nil {
		return false, err
	}
	return len(offs) == 0, nil
}

// FreeSlots computes the bookable windows of one day: the weekly windows minus
// time off and accepted bookings, chopped into slotMinutes pieces.
func (s *Service) FreeSlots(ctx context.Context, mentorProfileID int64, day time.Time, slotMinutes int) ([]Slot, error) {
	if slotMinutes <= 0 {
		slotMinutes = 60
	}
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rules, err := s.availability.RulesForWeekday(ctx, mentorProfileID, int(dayStart.Weekday()))
	if err != nil {
		return nil, err
	}

	var windows []Slot
	for _, rule := range rules {
		open, cerr := ruleTime(dayStart, rule.OpenTime)
		if cerr != nil {
			continue
		}
		closeT, cerr := ruleTime(dayStart, rule.CloseTime)
		if cerr != nil {
			continue
		}
		if closeT.After(open) {
			windows = append(windows, Slot{Start: open, End: closeT})
		}
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	var busy []Slot
	offs, err := s.availability.TimeOffInRange(ctx, mentorProfileID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, off := range offs {
		busy = append(busy, Slot{Start: off.StartTime.UTC(), End: off.EndTime.UTC()})
	}

	bookings, err := s.bookings.AcceptedInRange(ctx, mentorProfileID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		busy = append(busy, Slot{Start: b.StartTime.UTC(), End: b.EndTime.UTC()})
	}

	free := subtractBusy(windows, busy)

	slots := make([]Slot, 0)
	step := time.Duration(slotMinutes) * time.Minute
	for _, w := range free {
		for t := w.Start; !t.Add(step).After(w.End); t = t.Add(step) {
			slots = append(slots, Slot{Start: t, End: t.Add(step)})
		}
	}
	return slots, nil
}

// subtractBusy removes every busy interval from the open windows and returns
// the remaining free intervals in ascending order.
func subtractBusy(windows, busy []Slot) []Slot {
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	free := make([]Slot, 0, len(windows))
	for _, w := range windows {
		cur := w.Start
		for _, b := range busy {
			if !b.End.After(cur) || !b.Start.Before(w.End) {
				continue
			}
			if b.Start.After(cur) {
				free = append(free, Slot{Start: cur, End: minTime(b.Start, w.End)})
			}
			if b.End.After(cur) {
				cur = b.End
			}
			if !cur.Before(w.End) {
				break
			}
		}
		if cur.Before(w.End) {
			free = append(free, Slot{Start: cur, End: w.End})
		}
	}
	return free
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// ruleTime anchors a "15:04" rule time onto a concrete day in UTC.
func ruleTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
