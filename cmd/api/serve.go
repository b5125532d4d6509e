package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	_ "github.com/jhoicas/zola-inventory-api/docs"
	"github.com/jhoicas/zola-inventory-api/internal/application/access"
	appanalytics "github.com/jhoicas/zola-inventory-api/internal/application/analytics"
	"github.com/jhoicas/zola-inventory-api/internal/application/auth"
	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/application/purchasing"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	infraai "github.com/jhoicas/zola-inventory-api/internal/infrastructure/ai"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/cache"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/mail"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/zola-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/zola-inventory-api/internal/interfaces/http"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "aplica las migraciones pendientes antes de arrancar")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if migrateOnStart {
		if err := runMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			return err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del dashboard: opcional, solo con REDIS_URL.
	var dashCache ports.DashboardCache
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin caché")
		} else {
			defer rdb.Close()
			dashCache = cache.NewDashboardCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		}
	}

	files, err := storage.NewLocalStorage(cfg.Storage.Dir, cfg.Storage.PublicBaseURL, int64(cfg.Storage.MaxUploadMB)<<20)
	if err != nil {
		log.Error().Err(err).Msg("almacenamiento de archivos")
		return err
	}

	var mailer billing.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}

	accessSvc := access.NewService(userRepo, permRepo, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	llm := infraai.NewFromConfig(cfg.AI)
	m := metrics.New()

	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, accessSvc, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, cfg.Auth.AllowedEmailDomain, log),
		Access:           accessSvc,
		UserUC:           usecase.NewUserUseCase(userRepo, files, log),
		ProductUC:        usecase.NewProductUseCase(txRunner, productRepo, supplierRepo, files, dashCache, log),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo, dashCache, log),
		CreateInvoice:    billing.NewCreateInvoiceUseCase(txRunner, productRepo, supplierRepo, dashCache, log),
		InvoiceUC:        billing.NewInvoiceUseCase(invoiceRepo, files, dashCache, log),
		InvoicePDF:       billing.NewPDFUseCase(invoiceRepo, supplierRepo, pdfGenerator, mailer, log),
		PurchaseOrderUC:  purchasing.NewPurchaseOrderUseCase(txRunner, orderRepo, supplierRepo, productRepo, pdfGenerator, dashCache, log),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, movementRepo, dashCache, log),
		AlertUC:          inventory.NewAlertUseCase(alertRepo),
		DashboardUC:      appanalytics.NewDashboardUseCase(analyticsRepo, dashCache, log),
		AIUC: usecase.NewAIUseCase(llm, analyticsRepo, productRepo, orderRepo, invoiceRepo,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
		JWTSecret:      cfg.JWT.Secret,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (cfg.Storage.MaxUploadMB + 1) << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if cfg.Metrics.Enabled {
		app.Use(m.Middleware())
		app.Get(cfg.Metrics.Path, m.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Zola Pizza Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static("/files", files.Root())

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
