package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/auth"
	appbilling "github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/usecase"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BuildingUC    *usecase.BuildingUseCase
	ApartmentUC   *usecase.ApartmentUseCase
	InvoiceUC     *usecase.UtilityInvoiceUseCase
	SharedCostUC  *usecase.SharedCostUseCase
	BillUC        *usecase.BillUseCase
	GenerateBills *appbilling.GenerateBillsUseCase
	BillPDF       *appbilling.PDFUseCase
	DispatchUC    *notify.DispatchUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Buildings (protegido; crear es solo admin)
	buildings := protected.Group("/buildings")
	buildingHandler := NewBuildingHandler(deps.BuildingUC)
	buildings.Post("/", RequireRole(entity.RoleAdmin), buildingHandler.Create)
	buildings.Get("/", buildingHandler.List)
	buildings.Get("/:id", buildingHandler.GetByID)

	// Apartments (protegido)
	apartmentHandler := NewApartmentHandler(deps.ApartmentUC)
	buildings.Post("/:id/apartments", apartmentHandler.Create)
	buildings.Get("/:id/apartments", apartmentHandler.ListByBuilding)
	apartments := protected.Group("/apartments")
	apartments.Get("/:id", apartmentHandler.GetByID)
	apartments.Put("/:id", apartmentHandler.Update)

	// Utility invoices + costo compartido (protegido)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.SharedCostUC)
	buildings.Post("/:id/invoices", invoiceHandler.Create)
	buildings.Get("/:id/invoices", invoiceHandler.ListByBuilding)
	buildings.Put("/:id/shared-cost", invoiceHandler.SetSharedCost)
	buildings.Get("/:id/shared-cost", invoiceHandler.GetSharedCost)
	invoices := protected.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Billing engine + bills (protegido)
	billingHandler := NewBillingHandler(deps.GenerateBills, deps.BillPDF, deps.BillUC)
	billingGroup := protected.Group("/billing")
	billingGroup.Post("/generate", billingHandler.Generate)
	invoices.Get("/:id/bills", billingHandler.ListByInvoice)
	bills := protected.Group("/bills")
	bills.Get("/:id", billingHandler.GetByID)
	bills.Post("/:id/pay", billingHandler.MarkPaid)
	bills.Get("/:id/pdf", billingHandler.DownloadPDF)

	// Notifications (protegido)
	notifyHandler := NewNotifyHandler(deps.DispatchUC)
	billingGroup.Post("/notify", notifyHandler.Dispatch)
}
