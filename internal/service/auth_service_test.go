package service_test

import (
	"context"
	"testing"

	"lottopos/internal/config"
	"lottopos/internal/dto"
	"lottopos/internal/model"
	"lottopos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAuthSvc() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestLoginAndRefresh(t *testing.T) {
	svc, _ := buildAuthSvc()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "clerk1", Name: "Clerk One", Password: "secret123", Role: model.RoleEmployee,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "clerk1", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "clerk1", resp.User.Username)

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "clerk1", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Refresh(ctx, "garbage.token.here")
	assert.Error(t, err)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc, _ := buildAuthSvc()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "clerk1", Name: "A", Password: "secret123", Role: model.RoleEmployee,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "clerk1", Name: "B", Password: "secret123", Role: model.RoleEmployee,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLastAdminProtected(t *testing.T) {
	svc, repo := buildAuthSvc()
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "boss", Name: "Boss", Password: "secret123", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	var adminID = mustUUID(t, admin.ID)

	err = svc.DeactivateUser(ctx, adminID)
	assert.ErrorIs(t, err, service.ErrValidation)

	role := model.RoleEmployee
	_, err = svc.UpdateUser(ctx, adminID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, service.ErrValidation)

	// With a second admin the first one can step down.
	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "boss2", Name: "Boss Two", Password: "secret123", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(ctx, adminID))
	assert.False(t, repo.users[adminID].Active)

	// Inactive users cannot log in anymore.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "boss", Password: "secret123"})
	assert.Error(t, err)
}
