package entity

import "time"

// Permission nombre de una capacidad que se puede conceder a un usuario.
type Permission string

// Catálogo cerrado de permisos.
const (
	PermAddProducts          Permission = "can_add_products"
	PermEditProducts         Permission = "can_edit_products"
	PermDeleteProducts       Permission = "can_delete_products"
	PermAddInvoices          Permission = "can_add_invoices"
	PermEditInvoices         Permission = "can_edit_invoices"
	PermDeleteInvoices       Permission = "can_delete_invoices"
	PermAddPurchaseOrders    Permission = "can_add_purchase_orders"
	PermEditPurchaseOrders   Permission = "can_edit_purchase_orders"
	PermDeletePurchaseOrders Permission = "can_delete_purchase_orders"
	PermAddSuppliers         Permission = "can_add_suppliers"
	PermEditSuppliers        Permission = "can_edit_suppliers"
	PermDeleteSuppliers      Permission = "can_delete_suppliers"
	PermViewInsights         Permission = "can_view_insights"
	PermExportData           Permission = "can_export_data"
)

// AllPermissions lista los 14 permisos en orden estable.
var AllPermissions = []Permission{
	PermAddProducts, PermEditProducts, PermDeleteProducts,
	PermAddInvoices, PermEditInvoices, PermDeleteInvoices,
	PermAddPurchaseOrders, PermEditPurchaseOrders, PermDeletePurchaseOrders,
	PermAddSuppliers, PermEditSuppliers, PermDeleteSuppliers,
	PermViewInsights, PermExportData,
}

// IsKnownPermission indica si p pertenece al catálogo.
func IsKnownPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// PermissionGrant concesión explícita de un permiso a un usuario.
type PermissionGrant struct {
	UserID     string
	Permission Permission
	GrantedBy  string
	GrantedAt  time.Time
}
