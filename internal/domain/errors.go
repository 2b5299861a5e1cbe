package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; los casos de uso
// los retornan sin envolver para que errors.Is funcione en toda la app.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock disponible insuficiente")

	// Reglas del motor de inventario.
	ErrInsufficientReserved = errors.New("cantidad reservada insuficiente")
	ErrTrackingDisabled     = errors.New("el producto no maneja inventario")
	ErrInvalidThresholds    = errors.New("umbrales de reorden inconsistentes")
	ErrZeroMovement         = errors.New("el movimiento no puede ser cero")
)

// IsBusinessRule indica si el error corresponde a una regla de negocio violada
// (4xx, sin reintento automático) y no a un fallo de infraestructura.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInsufficientReserved) ||
		errors.Is(err, ErrTrackingDisabled) ||
		errors.Is(err, ErrInvalidThresholds) ||
		errors.Is(err, ErrZeroMovement)
}
