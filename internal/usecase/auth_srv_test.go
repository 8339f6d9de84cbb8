package usecase

import (
	"context"
	"testing"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/request"
	"paramount-autos/pkg/utils"
	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(users *MockUserRepo, sessions *MockSessionRepo, cfg *utils.Config) *authService {
	svc := NewAuthService(&repository.Repository{User: users, Session: sessions}, cfg, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func adminUser(t *testing.T, password string) *entity.User {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.NewBase(fixedNow),
		Email:        "admin@paramountautos.com",
		Name:         "Admin",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 12}}
	user := adminUser(t, "s3cret-pass")

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		sessions := new(MockSessionRepo)
		svc := newTestAuthService(users, sessions, cfg)

		users.On("FindByEmail", ctx, user.Email).Return(user, nil)
		sessions.On("Create", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)

		res, err := svc.Login(ctx, &request.LoginRequest{Email: user.Email, Password: "s3cret-pass"}, "curl/8", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), res.UserID)
		assert.Equal(t, fixedNow.Add(12*time.Hour), res.ExpiresAt)
		_, err = uuid.Parse(res.Token)
		assert.NoError(t, err)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), cfg)
		users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, &request.LoginRequest{Email: user.Email, Password: "guessing"}, "", "")
		assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	})

	t.Run("Unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), cfg)
		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "whatever"}, "", "")
		assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	})

	t.Run("Inactive account", func(t *testing.T) {
		inactive := *user
		inactive.IsActive = false
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), cfg)
		users.On("FindByEmail", ctx, user.Email).Return(&inactive, nil)

		_, err := svc.Login(ctx, &request.LoginRequest{Email: user.Email, Password: "s3cret-pass"}, "", "")
		assert.ErrorIs(t, err, xerrors.ErrForbidden)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := new(MockSessionRepo)
	svc := newTestAuthService(new(MockUserRepo), sessions, &utils.Config{})

	token := uuid.NewString()
	sessions.On("Revoke", ctx, token).Return(nil)
	assert.NoError(t, svc.Logout(ctx, token))

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), xerrors.ErrValidation)
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := &utils.Config{Admin: utils.AdminConfig{Email: " Owner@ParamountAutos.com ", Name: "Owner", Password: "change-me-now"}}

	t.Run("Creates missing admin", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), cfg)

		var created *entity.User
		users.On("FindByEmail", ctx, "owner@paramountautos.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.User) }).
			Return(nil)

		require.NoError(t, svc.SeedAdmin(ctx))
		require.NotNil(t, created)
		assert.Equal(t, entity.RoleSuperAdmin, created.Role)
		assert.True(t, utils.CheckPasswordHash("change-me-now", created.PasswordHash))
	})

	t.Run("Existing admin is left alone", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), cfg)
		users.On("FindByEmail", ctx, "owner@paramountautos.com").Return(&entity.User{}, nil)

		require.NoError(t, svc.SeedAdmin(ctx))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("No password configured", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := newTestAuthService(users, new(MockSessionRepo), &utils.Config{Admin: utils.AdminConfig{Email: "a@b.c"}})

		require.NoError(t, svc.SeedAdmin(ctx))
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_CleanExpiredSessions(t *testing.T) {
	ctx := context.Background()
	sessions := new(MockSessionRepo)
	svc := newTestAuthService(new(MockUserRepo), sessions, &utils.Config{})

	sessions.On("CleanExpiredSessions", ctx).Return(int64(3), nil)
	n, err := svc.CleanExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
