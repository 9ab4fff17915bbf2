package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de venta en el body.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID string            `json:"client_id" validate:"required"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Los ítems ausentes del
// nuevo conjunto se eliminan.
type UpdateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	SKU        string             `json:"sku"`
	ClientID   string             `json:"client_id"`
	ClientName string             `json:"client_name,omitempty"`
	Date       time.Time          `json:"date"`
	Total      decimal.Decimal    `json:"total"`
	Items      []SaleItemResponse `json:"items,omitempty"`
}

// SalesByDayResponse total vendido por fecha.
type SalesByDayResponse struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}
