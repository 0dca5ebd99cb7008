package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
)

// NotifyHandler maneja el despacho de notificaciones de facturas (protegido).
type NotifyHandler struct {
	uc *notify.DispatchUseCase
}

// NewNotifyHandler construye el handler.
func NewNotifyHandler(uc *notify.DispatchUseCase) *NotifyHandler {
	return &NotifyHandler{uc: uc}
}

// Dispatch envía la notificación de cada factura del lote y responde las tres
// listas disyuntas (sent, failed, no_contact).
// POST /api/billing/notify
func (h *NotifyHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Dispatch(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrFeatureDisabled) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOTIFICATIONS_DISABLED", Message: "las notificaciones están deshabilitadas"})
		}
		if errors.Is(err, domain.ErrGatewayNotConfigured) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "GATEWAY_NOT_CONFIGURED", Message: "gateway de mensajería sin configurar"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bill_ids requerido"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado a una de las facturas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
