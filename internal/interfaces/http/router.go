package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/access"
	"github.com/jhoicas/zola-inventory-api/internal/application/analytics"
	"github.com/jhoicas/zola-inventory-api/internal/application/auth"
	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/purchasing"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	Access           *access.Service
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *usecase.SupplierUseCase
	CreateInvoice    *billing.CreateInvoiceUseCase
	InvoiceUC        *billing.InvoiceUseCase
	InvoicePDF       *billing.PDFUseCase
	PurchaseOrderUC  *purchasing.PurchaseOrderUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	AlertUC          *inventory.AlertUseCase
	DashboardUC      *analytics.DashboardUseCase
	AIUC             *usecase.AIUseCase
	Metrics          *metrics.Metrics // opcional

	JWTSecret      string
	LoginPerMinute int
	LoginBurst     int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := ActiveSessionMiddleware(deps.JWTSecret, deps.Access)
	can := func(p entity.Permission) fiber.Handler { return RequirePermission(p, deps.Access) }

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	limiter := LoginRateLimit(deps.LoginPerMinute, deps.LoginBurst)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", limiter, authHandler.SignUp)
	authGroup.Post("/login", limiter, authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Administración de usuarios (solo manager activo)
	userHandler := NewUserHandler(deps.UserUC, deps.Access)
	users := api.Group("/users", authMW, RequireActiveRole(deps.Access, entity.RoleManager))
	users.Get("/", userHandler.List)
	users.Patch("/:id/role", userHandler.UpdateRole)
	users.Patch("/:id/status", userHandler.UpdateStatus)
	users.Get("/:id/permissions", userHandler.Permissions)
	users.Post("/:id/permissions/:permission/toggle", userHandler.TogglePermission)

	profile := api.Group("/profile", authMW)
	profile.Get("/", userHandler.GetProfile)
	profile.Patch("/", userHandler.UpdateProfile)
	profile.Post("/avatar", userHandler.UploadAvatar)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", authMW)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/export", can(entity.PermExportData), productHandler.ExportCSV)
	products.Post("/", can(entity.PermAddProducts), productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", can(entity.PermEditProducts), productHandler.Update)
	products.Delete("/:id", can(entity.PermDeleteProducts), productHandler.Delete)
	products.Post("/:id/photo", can(entity.PermEditProducts), productHandler.UploadPhoto)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", authMW)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", can(entity.PermAddSuppliers), supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", can(entity.PermEditSuppliers), supplierHandler.Update)
	suppliers.Delete("/:id", can(entity.PermDeleteSuppliers), supplierHandler.Delete)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoiceUC, deps.InvoicePDF)
	invoices := api.Group("/invoices", authMW)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", can(entity.PermAddInvoices), invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", can(entity.PermEditInvoices), invoiceHandler.Update)
	invoices.Delete("/:id", can(entity.PermDeleteInvoices), invoiceHandler.Delete)
	invoices.Post("/:id/photo", can(entity.PermEditInvoices), invoiceHandler.UploadPhoto)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/email", can(entity.PermExportData), invoiceHandler.SendEmail)

	// Purchase orders
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders := api.Group("/purchase-orders", authMW)
	orders.Get("/", poHandler.List)
	orders.Post("/", can(entity.PermAddPurchaseOrders), poHandler.Create)
	orders.Get("/:id", poHandler.GetByID)
	orders.Patch("/:id/status", can(entity.PermEditPurchaseOrders), poHandler.UpdateStatus)
	orders.Delete("/:id", can(entity.PermDeletePurchaseOrders), poHandler.Delete)
	orders.Get("/:id/pdf", poHandler.DownloadPDF)

	// Stock ledger y avisos
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.AlertUC, deps.Metrics)
	movements := api.Group("/stock-movements", authMW)
	movements.Get("/", stockHandler.ListMovements)
	movements.Get("/export", can(entity.PermExportData), stockHandler.ExportMovements)
	movements.Post("/", RequireActiveRole(deps.Access, entity.RoleManager, entity.RoleSupervisor), stockHandler.RecordMovement)

	alerts := api.Group("/alerts", authMW)
	alerts.Get("/low-stock", stockHandler.ListAlerts)
	alerts.Post("/low-stock/:id/ack", stockHandler.AcknowledgeAlert)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", authMW, dashboardHandler.GetSummary)

	// AI
	aiHandler := NewAIHandler(deps.AIUC, deps.Metrics)
	api.Post("/ai/insights", authMW, can(entity.PermViewInsights), aiHandler.Insights)
}
