package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) CreateRule(ctx context.Context, rule *domain.AvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AvailabilityRepository) DeleteRule(ctx context.Context, mentorProfileID, ruleID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND mentor_profile_id = ?", ruleID, mentorProfileID).
		Delete(&domain.AvailabilityRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AvailabilityRepository) RulesForMentor(ctx context.Context, mentorProfileID int64) ([]domain.AvailabilityRule, error) {
	var rules []domain.AvailabilityRule
	err := r.db.WithContext(ctx).
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("weekday ASC, open_time ASC").
		Find(&rules).Error
	return rules, err
}

func (r *AvailabilityRepository) RulesForWeekday(ctx context.Context, mentorProfileID int64, weekday int) ([]domain.AvailabilityRule, error) {
	var rules []domain.AvailabilityRule
	err := r.db.WithContext(ctx).
		Where("mentor_profile_id = ? AND weekday = ?", mentorProfileID, weekday).
		Order("open_time ASC").
		Find(&rules).Error
	return rules, err
}

func (r *AvailabilityRepository) CreateTimeOff(ctx context.Context, t *domain.TimeOff) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AvailabilityRepository) DeleteTimeOff(ctx context.Context, mentorProfileID, timeOffID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND mentor_profile_id = ?", timeOffID, mentorProfileID).
		Delete(&domain.TimeOff{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AvailabilityRepository) TimeOffInRange(ctx context.Context, mentorProfileID int64, from, to time.Time) ([]domain.TimeOff, error) {
	var offs []domain.TimeOff
	err := r.db.WithContext(ctx).
		Where("mentor_profile_id = ?", mentorProfileID).
		Where("start_time < ? AND end_time > ?", to, from).
		Find(&offs).Error
	return offs, err
}
