package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeEntrada = "entrada" // suma stock
	MovementTypeSalida  = "salida"  // resta stock
	MovementTypeAjuste  = "ajuste"  // informativo; el delta real se expresa como entrada/salida
)

// ValidMovementType verifica que el tipo sea uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro de movimientos: se crea
// exactamente una vez por evento que afecta stock y nunca se actualiza ni se
// borra (la reversión de una venta se registra como un movimiento nuevo).
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada, salida, ajuste
	Quantity  int    // siempre positivo; el tipo lleva el signo
	Date      time.Time
	Reason    string // ej. "Venta VENT-12345", "Ajuste de stock"
	CreatedBy string // usuario que originó el movimiento
}
