package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad o precio inválido")
	ErrEmptySale          = errors.New("la venta no tiene ítems")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrProtected          = errors.New("el recurso está referenciado y no puede eliminarse")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError identifica el producto que no alcanza a cubrir la
// cantidad solicitada. errors.Is(err, ErrInsufficientStock) también es true.
type InsufficientStockError struct {
	ProductID string
	SKU       string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.Name, e.SKU, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Shortfall devuelve cuántas unidades faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}
