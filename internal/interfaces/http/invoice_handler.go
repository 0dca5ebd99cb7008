package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/usecase"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
)

// InvoiceHandler maneja las facturas de acueducto y el costo compartido (protegido).
type InvoiceHandler struct {
	uc           *usecase.UtilityInvoiceUseCase
	sharedCostUC *usecase.SharedCostUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.UtilityInvoiceUseCase, sharedCostUC *usecase.SharedCostUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, sharedCostUC: sharedCostUC}
}

// Create registra la factura de acueducto del periodo.
// POST /api/buildings/:id/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUtilityInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Create(GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// ListByBuilding lista las facturas de acueducto del edificio.
// GET /api/buildings/:id/invoices
func (h *InvoiceHandler) ListByBuilding(c *fiber.Ctx) error {
	items, err := h.uc.ListByBuilding(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(items)
}

// GetByID obtiene una factura de acueducto.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetByID(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoice)
}

// Delete elimina una factura de acueducto sin facturas generadas.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), GetRole(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la factura tiene facturas de apartamento generadas"})
		}
		return invoiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetSharedCost fija el costo compartido por periodo del edificio.
// PUT /api/buildings/:id/shared-cost
func (h *InvoiceHandler) SetSharedCost(c *fiber.Ctx) error {
	var in dto.SetSharedCostRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	setting, err := h.sharedCostUC.Set(GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(setting)
}

// GetSharedCost obtiene la configuración activa del edificio.
// GET /api/buildings/:id/shared-cost
func (h *InvoiceHandler) GetSharedCost(c *fiber.Ctx) error {
	setting, err := h.sharedCostUC.GetActive(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin configuración de costo compartido activa"})
		}
		return invoiceError(c, err)
	}
	return c.JSON(setting)
}

func invoiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura o edificio no encontrado"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al edificio"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
