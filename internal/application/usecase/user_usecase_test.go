package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

func seedUsers(t *testing.T) *apptest.Store {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "boss", Email: "boss@zola-pizza.com", Role: entity.RoleManager, Status: entity.UserStatusActive,
	}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "new", Email: "new@zola-pizza.com", Role: entity.RolePending, Status: entity.UserStatusPending,
	}))
	return store
}

func TestUpdateStatus_AprobarPromueveAStaff(t *testing.T) {
	store := seedUsers(t)
	uc := usecase.NewUserUseCase(store.Users(), nil, nil)

	out, err := uc.UpdateStatus(context.Background(), "boss", "new", entity.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, out.Status)
	assert.Equal(t, entity.RoleStaff, out.Role)
}

func TestUpdateRoleYStatus_NoSobreSiMismo(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), nil, nil)
	ctx := context.Background()

	_, err := uc.UpdateRole(ctx, "boss", "boss", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.UpdateStatus(ctx, "boss", "boss", entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateRole_Validaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), nil, nil)
	ctx := context.Background()

	_, err := uc.UpdateRole(ctx, "boss", "new", "owner")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateRole(ctx, "boss", "ghost", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.UpdateRole(ctx, "boss", "new", entity.RoleSupervisor)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupervisor, out.Role)
}

func TestProfile_NombreYAvatar(t *testing.T) {
	storage := newMemStorage()
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), storage, nil)
	ctx := context.Background()

	out, err := uc.UpdateProfile(ctx, "boss", dto.UpdateProfileRequest{FullName: "  Dona Zola "})
	require.NoError(t, err)
	assert.Equal(t, "Dona Zola", out.FullName)

	out, err = uc.UploadAvatar(ctx, "boss", "eu.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.AvatarURL, "http://files.test/avatars/boss/"))
	assert.True(t, strings.HasSuffix(out.AvatarURL, ".jpg"))
}
