package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/zola-inventory-api/internal/domain/access"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

func TestCan_ManagerSinConcesionesTieneTodo(t *testing.T) {
	for _, p := range entity.AllPermissions {
		assert.True(t, access.Can(entity.RoleManager, nil, p), "manager debe tener %s", p)
	}
}

func TestCan_StaffSoloLoConcedido(t *testing.T) {
	grants := access.NewGrants(entity.PermAddProducts)
	for _, p := range entity.AllPermissions {
		got := access.Can(entity.RoleStaff, grants, p)
		if p == entity.PermAddProducts {
			assert.True(t, got)
			continue
		}
		assert.False(t, got, "staff no debe tener %s", p)
	}
}

func TestCan_SupervisorAgregaYEditaPeroNoElimina(t *testing.T) {
	assert.True(t, access.Can(entity.RoleSupervisor, nil, entity.PermAddInvoices))
	assert.True(t, access.Can(entity.RoleSupervisor, nil, entity.PermEditSuppliers))
	assert.True(t, access.Can(entity.RoleSupervisor, nil, entity.PermViewInsights))
	assert.True(t, access.Can(entity.RoleSupervisor, nil, entity.PermExportData))

	assert.False(t, access.Can(entity.RoleSupervisor, nil, entity.PermDeleteProducts))
	assert.False(t, access.Can(entity.RoleSupervisor, nil, entity.PermDeletePurchaseOrders))
}

func TestCan_SupervisorConConcesionDeEliminar(t *testing.T) {
	grants := access.NewGrants(entity.PermDeleteProducts)
	assert.True(t, access.Can(entity.RoleSupervisor, grants, entity.PermDeleteProducts))
	assert.False(t, access.Can(entity.RoleSupervisor, grants, entity.PermDeleteInvoices))
}

func TestCan_PendingSinDefaults(t *testing.T) {
	for _, p := range entity.AllPermissions {
		assert.False(t, access.Can(entity.RolePending, nil, p))
	}
}

func TestCan_PermisoDesconocidoSeDeniega(t *testing.T) {
	unknown := entity.Permission("can_launch_rockets")
	assert.False(t, access.Can(entity.RoleManager, nil, unknown))
	assert.False(t, access.Can(entity.RoleStaff, access.NewGrants(unknown), unknown))
}

func TestCan_Idempotente(t *testing.T) {
	grants := access.NewGrants(entity.PermExportData, entity.PermDeleteSuppliers)
	for _, role := range []string{entity.RoleManager, entity.RoleSupervisor, entity.RoleStaff, entity.RolePending} {
		for _, p := range entity.AllPermissions {
			assert.Equal(t, access.Can(role, grants, p), access.Can(role, grants, p))
		}
	}
}

func TestEffective_Supervisor(t *testing.T) {
	perms := access.Effective(entity.RoleSupervisor, nil)
	assert.Len(t, perms, 10)
	assert.NotContains(t, perms, entity.PermDeleteInvoices)
}
