package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/usecase"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
)

// BillingHandler maneja la generación de lotes y las facturas por apartamento (protegido).
type BillingHandler struct {
	generateUC *appbilling.GenerateBillsUseCase
	pdfUC      *appbilling.PDFUseCase
	billUC     *usecase.BillUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	generateUC *appbilling.GenerateBillsUseCase,
	pdfUC *appbilling.PDFUseCase,
	billUC *usecase.BillUseCase,
) *BillingHandler {
	return &BillingHandler{generateUC: generateUC, pdfUC: pdfUC, billUC: billUC}
}

// Generate corre el lote de facturación contra una factura de acueducto.
// Los errores por ítem viajan en el cuerpo 200; solo las precondiciones del
// lote completo producen un error HTTP.
// POST /api/billing/generate
func (h *BillingHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateBillsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.generateUC.GenerateBills(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_id y lecturas requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura de acueducto no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al edificio"})
		}
		if errors.Is(err, domain.ErrInvalidInvoice) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_INVOICE", Message: "la factura de acueducto no tiene consumo total positivo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// ListByInvoice lista las facturas generadas contra una factura de acueducto.
// GET /api/invoices/:id/bills
func (h *BillingHandler) ListByInvoice(c *fiber.Ctx) error {
	items, err := h.billUC.ListByInvoice(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return billError(c, err)
	}
	return c.JSON(items)
}

// GetByID obtiene una factura por apartamento.
// GET /api/bills/:id
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.billUC.GetByID(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return billError(c, err)
	}
	return c.JSON(bill)
}

// MarkPaid marca una factura como pagada.
// POST /api/bills/:id/pay
func (h *BillingHandler) MarkPaid(c *fiber.Ctx) error {
	if err := h.billUC.MarkPaid(GetUserID(c), GetRole(c), c.Params("id")); err != nil {
		return billError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF genera y descarga el estado de cuenta de la factura.
// GET /api/bills/:id/pdf
func (h *BillingHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadBillPDF(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return billError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func billError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
