package auth

import (
	"context"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB
}

type MentorProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.MentorProfile, error)
}

type TokenGenerator interface {
	GenerateToken(userID int64, role string, mentorProfileID int64) (string, error)
}
