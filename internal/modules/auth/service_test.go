package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub/internal/database"
	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/jwt"
	"mentorhub/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.MentorProfileRepository, *jwt.Service) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)
	mentors := repository.NewMentorProfileRepository(db)
	tokens := jwt.New("test-secret", time.Hour)

	return NewService(users, mentors, tokens), mentors, tokens
}

func TestRegister_Mentee(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "Mentee@Example.com",
		Password: "secret-password",
		Name:     "Aliya",
		Role:     "mentee",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "mentee@example.com", resp.User.Email)
	assert.Equal(t, "mentee", resp.User.Role)
	assert.Zero(t, resp.User.MentorProfileID)
}

func TestRegister_MentorCreatesProfile(t *testing.T) {
	svc, mentors, tokens := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:      "mentor@example.com",
		Password:   "secret-password",
		Name:       "Daniyar",
		Role:       "mentor",
		Headline:   "Backend engineer",
		HourlyRate: 50,
	})

	require.NoError(t, err)
	require.NotZero(t, resp.User.MentorProfileID)

	profile, err := mentors.GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", profile.Headline)
	assert.Equal(t, float64(50), profile.HourlyRate)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, profile.ID, claims.MentorProfileID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Email:    "dup@example.com",
		Password: "secret-password",
		Name:     "First",
		Role:     "mentee",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Name = "Second"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "login@example.com",
		Password: "secret-password",
		Name:     "Login",
		Role:     "mentee",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_MentorTokenCarriesProfile(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{
		Email:    "mentor-login@example.com",
		Password: "secret-password",
		Name:     "Mentor",
		Role:     "mentor",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "mentor-login@example.com", Password: "secret-password"})
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.MentorProfileID, claims.MentorProfileID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "login2@example.com",
		Password: "secret-password",
		Name:     "Login",
		Role:     "mentee",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "login2@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "me@example.com",
		Password: "secret-password",
		Name:     "Me",
		Role:     "mentor",
	})
	require.NoError(t, err)

	me, err := svc.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Equal(t, string(domain.RoleMentor), me.Role)
	assert.Equal(t, resp.User.MentorProfileID, me.MentorProfileID)
}
