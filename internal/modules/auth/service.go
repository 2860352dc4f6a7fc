package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type Service struct {
	users   UserRepository
	mentors MentorProfileRepository
	tokens  TokenGenerator
}

func NewService(users UserRepository, mentors MentorProfileRepository, tokens TokenGenerator) *Service {
	return &Service{users: users, mentors: mentors, tokens: tokens}
}

// Register creates a user account. Registering as a mentor also creates the
// mentor profile in the same transaction, so a mentor account never exists
// without its profile.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		Name:         req.Name,
		Phone:        req.Phone,
		Timezone:     req.Timezone,
	}

	var profileID int64
	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.Role == domain.RoleMentor {
			profile := &domain.MentorProfile{
				UserID:     user.ID,
				Headline:   req.Headline,
				Bio:        req.Bio,
				HourlyRate: req.HourlyRate,
			}
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
			profileID = profile.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), profileID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: toUserResponse(user, profileID)}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profileID := s.mentorProfileID(ctx, user)
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), profileID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: toUserResponse(user, profileID)}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := toUserResponse(user, s.mentorProfileID(ctx, user))
	return &resp, nil
}

func (s *Service) mentorProfileID(ctx context.Context, user *domain.User) int64 {
	if user.Role != domain.RoleMentor {
		return 0
	}
	profile, err := s.mentors.GetByUserID(ctx, user.ID)
	if err != nil {
		return 0
	}
	return profile.ID
}
