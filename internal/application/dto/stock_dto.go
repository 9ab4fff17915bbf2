package dto

import "time"

// RegisterMovementRequest body para POST /api/products/:id/movements.
type RegisterMovementRequest struct {
	Type     string `json:"type" validate:"required,oneof=entrada salida ajuste"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"max=200"`
}

// AdjustStockRequest body para POST /api/products/:id/stock. Quantity es la
// cantidad absoluta deseada; el delta se deriva del stock actual.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"min=0"`
	Reason   string `json:"reason" validate:"max=200"`
}

// MovementResponse movimiento del libro en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
}

// ApplyMovementResponse resultado de registrar un movimiento.
type ApplyMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock int              `json:"new_stock"`
}

// AdjustStockResponse resultado de un ajuste absoluto. Delta 0 significa que
// no hubo cambio y no se registró movimiento.
type AdjustStockResponse struct {
	NewStock int               `json:"new_stock"`
	Delta    int               `json:"delta"`
	Movement *MovementResponse `json:"movement,omitempty"`
}
