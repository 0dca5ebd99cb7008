package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/auth"
	appbilling "github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/usecase"
	"github.com/Check-karim/apartement-management-system-sub000/internal/infrastructure/gateway"
	infrapdf "github.com/Check-karim/apartement-management-system-sub000/internal/infrastructure/pdf"
	"github.com/Check-karim/apartement-management-system-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Check-karim/apartement-management-system-sub000/internal/interfaces/http"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/config"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	buildingRepo := postgres.NewBuildingRepository(pool)
	apartmentRepo := postgres.NewApartmentRepository(pool)
	invoiceRepo := postgres.NewUtilityInvoiceRepository(pool)
	sharedCostRepo := postgres.NewSharedCostRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	buildingUC := usecase.NewBuildingUseCase(buildingRepo)
	apartmentUC := usecase.NewApartmentUseCase(apartmentRepo, buildingRepo)
	invoiceUC := usecase.NewUtilityInvoiceUseCase(invoiceRepo, billRepo, buildingRepo)
	sharedCostUC := usecase.NewSharedCostUseCase(sharedCostRepo, buildingRepo)
	billUC := usecase.NewBillUseCase(billRepo, invoiceRepo, apartmentRepo, buildingRepo)

	generateBillsUC := appbilling.NewGenerateBillsUseCase(
		txRunner, invoiceRepo, buildingRepo, sharedCostRepo, log,
	)

	formatter := notify.NewCurrencyFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	messageGateway := gateway.NewHTTPMessageGateway(cfg.Notify)
	dispatchUC := notify.NewDispatchUseCase(
		cfg.Notify, formatter, messageGateway, txRunner,
		billRepo, apartmentRepo, buildingRepo, invoiceRepo, log,
	)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(formatter)
	billPDFUC := appbilling.NewPDFUseCase(
		billRepo, apartmentRepo, buildingRepo, invoiceRepo, pdfGenerator,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Apartment Management API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BuildingUC:    buildingUC,
		ApartmentUC:   apartmentUC,
		InvoiceUC:     invoiceUC,
		SharedCostUC:  sharedCostUC,
		BillUC:        billUC,
		GenerateBills: generateBillsUC,
		BillPDF:       billPDFUC,
		DispatchUC:    dispatchUC,
		JWTSecret:     cfg.JWT.Secret,
	})

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
}
