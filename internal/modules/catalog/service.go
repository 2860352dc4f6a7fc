package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type Service struct {
	skills   SkillRepository
	listings ListingRepository
}

func NewService(skills SkillRepository, listings ListingRepository) *Service {
	return &Service{skills: skills, listings: listings}
}

func (s *Service) CreateSkill(ctx context.Context, req CreateSkillRequest) (*domain.Skill, error) {
	slug := slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: skill name produces an empty slug", ErrValidation)
	}

	if existing, err := s.skills.GetBySlug(ctx, slug); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill := &domain.Skill{Name: strings.TrimSpace(req.Name), Slug: slug}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Service) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return s.skills.List(ctx)
}

func (s *Service) CreateListing(ctx context.Context, mentorProfileID int64, req CreateListingRequest) (*domain.Listing, error) {
	if _, err := s.skills.GetByID(ctx, req.SkillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill not found", ErrNotFound)
		}
		return nil, err
	}

	l := &domain.Listing{
		MentorProfileID: mentorProfileID,
		SkillID:         req.SkillID,
		Title:           req.Title,
		Description:     req.Description,
		PricePerHour:    req.PricePerHour,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateListing(ctx context.Context, mentorProfileID, listingID int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.MentorProfileID != mentorProfileID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.PricePerHour != nil {
		l.PricePerHour = *req.PricePerHour
	}
	if req.DurationMinutes != nil {
		l.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) BrowseListings(ctx context.Context, skillID int64, limit, offset int) ([]domain.Listing, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.listings.ListPublic(ctx, skillID, limit, offset)
}

func (s *Service) ListingsForMentor(ctx context.Context, mentorProfileID int64) ([]domain.Listing, error) {
	return s.listings.ListByMentor(ctx, mentorProfileID)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
