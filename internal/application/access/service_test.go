package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/access"
	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

func seedUser(t *testing.T, store *apptest.Store, id, role, status string) {
	t.Helper()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: id, Email: id + "@zola-pizza.com", Role: role, Status: status,
	}))
}

func TestCan_UsaRolYConcesionesDeLaBase(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "staff-1", entity.RoleStaff, entity.UserStatusActive)
	seedUser(t, store, "sup-1", entity.RoleSupervisor, entity.UserStatusActive)
	seedUser(t, store, "boss", entity.RoleManager, entity.UserStatusActive)
	svc := access.NewService(store.Users(), store.Permissions(), nil)
	ctx := context.Background()

	ok, err := svc.Can(ctx, "staff-1", entity.PermAddProducts)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Toggle(ctx, "boss", "staff-1", entity.PermAddProducts)
	require.NoError(t, err)
	ok, err = svc.Can(ctx, "staff-1", entity.PermAddProducts)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = svc.Can(ctx, "sup-1", entity.PermEditSuppliers)
	assert.True(t, ok)
	ok, _ = svc.Can(ctx, "sup-1", entity.PermDeleteSuppliers)
	assert.False(t, ok)
	ok, _ = svc.Can(ctx, "boss", entity.PermDeleteInvoices)
	assert.True(t, ok)
}

func TestCan_CuentaInactivaNoPuedeNada(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "old-boss", entity.RoleManager, entity.UserStatusInactive)
	svc := access.NewService(store.Users(), store.Permissions(), nil)

	ok, err := svc.Can(context.Background(), "old-boss", entity.PermAddProducts)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Can(context.Background(), "desconocido", entity.PermAddProducts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggle_ConcedeYRevoca(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "staff-1", entity.RoleStaff, entity.UserStatusActive)
	svc := access.NewService(store.Users(), store.Permissions(), nil)
	ctx := context.Background()

	res, err := svc.Toggle(ctx, "boss", "staff-1", entity.PermExportData)
	require.NoError(t, err)
	assert.True(t, res.Granted)

	perms, err := svc.UserPermissions(ctx, "staff-1")
	require.NoError(t, err)
	require.Len(t, perms.Grants, 1)
	assert.Equal(t, "boss", perms.Grants[0].GrantedBy)
	assert.Equal(t, []string{"can_export_data"}, perms.Effective)

	res, err = svc.Toggle(ctx, "boss", "staff-1", entity.PermExportData)
	require.NoError(t, err)
	assert.False(t, res.Granted)

	perms, err = svc.UserPermissions(ctx, "staff-1")
	require.NoError(t, err)
	assert.Empty(t, perms.Grants)
	assert.Empty(t, perms.Effective)
}

func TestToggle_PermisoDesconocido(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "staff-1", entity.RoleStaff, entity.UserStatusActive)
	svc := access.NewService(store.Users(), store.Permissions(), nil)

	_, err := svc.Toggle(context.Background(), "boss", "staff-1", entity.Permission("can_fly"))
	assert.ErrorIs(t, err, domain.ErrInvalidPermission)

	_, err = svc.Toggle(context.Background(), "boss", "nadie", entity.PermExportData)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestHasRole_UsaRolVigenteYEstado(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "boss", entity.RoleManager, entity.UserStatusActive)
	seedUser(t, store, "ex-boss", entity.RoleManager, entity.UserStatusInactive)
	seedUser(t, store, "staff-1", entity.RoleStaff, entity.UserStatusActive)
	svc := access.NewService(store.Users(), store.Permissions(), nil)
	ctx := context.Background()

	ok, err := svc.HasRole(ctx, "boss", entity.RoleManager, entity.RoleSupervisor)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = svc.HasRole(ctx, "ex-boss", entity.RoleManager)
	assert.False(t, ok, "una cuenta inactiva no conserva su rol")

	ok, _ = svc.HasRole(ctx, "staff-1", entity.RoleManager, entity.RoleSupervisor)
	assert.False(t, ok)

	ok, err = svc.HasRole(ctx, "nadie", entity.RoleManager)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsActive(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "ativo", entity.RoleStaff, entity.UserStatusActive)
	seedUser(t, store, "inativo", entity.RoleManager, entity.UserStatusInactive)
	seedUser(t, store, "pendente", entity.RolePending, entity.UserStatusPending)
	svc := access.NewService(store.Users(), store.Permissions(), nil)
	ctx := context.Background()

	for id, want := range map[string]bool{"ativo": true, "inativo": false, "pendente": false, "nadie": false} {
		ok, err := svc.IsActive(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, ok, id)
	}
}
