package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type Service struct {
	mentors MentorProfileRepository
	skills  SkillReader
}

func NewService(mentors MentorProfileRepository, skills SkillReader) *Service {
	return &Service{mentors: mentors, skills: skills}
}

func (s *Service) GetPublic(ctx context.Context, profileID int64) (*domain.MentorProfile, error) {
	p, err := s.mentors.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) GetOwn(ctx context.Context, userID int64) (*domain.MentorProfile, error) {
	p, err := s.mentors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of the request to the caller's profile.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.MentorProfile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Headline != nil {
		p.Headline = *req.Headline
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		p.HourlyRate = *req.HourlyRate
	}
	if req.YearsExperience != nil {
		p.YearsExperience = *req.YearsExperience
	}

	if err := s.mentors.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPublic(ctx context.Context, limit, offset int) ([]domain.MentorProfile, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.mentors.ListPublic(ctx, limit, offset)
}

func (s *Service) AttachSkill(ctx context.Context, profileID, skillID int64) error {
	if _, err := s.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.mentors.AttachSkill(ctx, profileID, skillID)
}

func (s *Service) DetachSkill(ctx context.Context, profileID, skillID int64) error {
	return s.mentors.DetachSkill(ctx, profileID, skillID)
}
