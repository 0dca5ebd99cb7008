package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del motor de facturación de acueducto.
	ErrInvalidInvoice  = errors.New("factura de acueducto inválida: consumo total debe ser mayor a cero")
	ErrInvalidReading  = errors.New("lectura de medidor inválida")
	ErrMeterRegression = errors.New("lectura actual menor a la lectura anterior")
	ErrDuplicateBill   = errors.New("ya existe una factura para este apartamento y periodo")

	// Errores de configuración del envío de notificaciones.
	ErrFeatureDisabled      = errors.New("envío de notificaciones deshabilitado")
	ErrGatewayNotConfigured = errors.New("gateway de mensajería sin configurar")
)
