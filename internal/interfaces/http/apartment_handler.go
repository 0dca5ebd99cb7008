package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/usecase"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
)

// ApartmentHandler maneja las peticiones HTTP de apartamentos (protegido).
type ApartmentHandler struct {
	uc *usecase.ApartmentUseCase
}

// NewApartmentHandler construye el handler.
func NewApartmentHandler(uc *usecase.ApartmentUseCase) *ApartmentHandler {
	return &ApartmentHandler{uc: uc}
}

// Create crea un apartamento en el edificio.
// POST /api/buildings/:id/apartments
func (h *ApartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	apartment, err := h.uc.Create(GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return apartmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(apartment)
}

// ListByBuilding lista los apartamentos del edificio.
// GET /api/buildings/:id/apartments
func (h *ApartmentHandler) ListByBuilding(c *fiber.Ctx) error {
	items, err := h.uc.ListByBuilding(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return apartmentError(c, err)
	}
	return c.JSON(items)
}

// GetByID obtiene un apartamento.
// GET /api/apartments/:id
func (h *ApartmentHandler) GetByID(c *fiber.Ctx) error {
	apartment, err := h.uc.GetByID(GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return apartmentError(c, err)
	}
	return c.JSON(apartment)
}

// Update actualiza los datos del arrendatario (nunca la lectura del medidor).
// PUT /api/apartments/:id
func (h *ApartmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateApartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	apartment, err := h.uc.Update(GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return apartmentError(c, err)
	}
	return c.JSON(apartment)
}

func apartmentError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "apartamento o edificio no encontrado"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al edificio"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "número de apartamento duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
