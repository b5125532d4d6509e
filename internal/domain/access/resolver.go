// Package access resuelve si un rol, junto con sus permisos concedidos, puede ejercer una capacidad.
package access

import "github.com/jhoicas/zola-inventory-api/internal/domain/entity"

// supervisorDefaults permisos implícitos del rol supervisor: agregar/editar (nunca eliminar)
// en los cuatro recursos, más insights y exportación.
var supervisorDefaults = map[entity.Permission]struct{}{
	entity.PermAddProducts:        {},
	entity.PermEditProducts:       {},
	entity.PermAddInvoices:        {},
	entity.PermEditInvoices:       {},
	entity.PermAddPurchaseOrders:  {},
	entity.PermEditPurchaseOrders: {},
	entity.PermAddSuppliers:       {},
	entity.PermEditSuppliers:      {},
	entity.PermViewInsights:       {},
	entity.PermExportData:         {},
}

// Grants conjunto de permisos concedidos explícitamente a un usuario.
type Grants map[entity.Permission]struct{}

// NewGrants construye el conjunto a partir de una lista.
func NewGrants(perms ...entity.Permission) Grants {
	g := make(Grants, len(perms))
	for _, p := range perms {
		g[p] = struct{}{}
	}
	return g
}

// Has indica si p está concedido.
func (g Grants) Has(p entity.Permission) bool {
	_, ok := g[p]
	return ok
}

// Can resuelve el permiso: manager todo; supervisor su lista fija; cualquier otro caso
// solo lo concedido explícitamente. Nombres desconocidos se deniegan siempre.
func Can(role string, grants Grants, p entity.Permission) bool {
	if !entity.IsKnownPermission(p) {
		return false
	}
	switch role {
	case entity.RoleManager:
		return true
	case entity.RoleSupervisor:
		if _, ok := supervisorDefaults[p]; ok {
			return true
		}
	}
	return grants.Has(p)
}

// Effective lista, en el orden del catálogo, todos los permisos que Can concede.
func Effective(role string, grants Grants) []entity.Permission {
	out := make([]entity.Permission, 0, len(entity.AllPermissions))
	for _, p := range entity.AllPermissions {
		if Can(role, grants, p) {
			out = append(out, p)
		}
	}
	return out
}
