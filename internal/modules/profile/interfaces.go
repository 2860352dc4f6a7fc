package profile

import (
	"context"

	"mentorhub/internal/domain"
)

type MentorProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.MentorProfile, error)
	Update(ctx context.Context, p *domain.MentorProfile) error
	ListPublic(ctx context.Context, limit, offset int) ([]domain.MentorProfile, int64, error)
	AttachSkill(ctx context.Context, profileID, skillID int64) error
	DetachSkill(ctx context.Context, profileID, skillID int64) error
}

type SkillReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
}
