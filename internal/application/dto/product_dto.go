package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// SKU vacío genera uno automáticamente (PROD-#####); Stock inicial mayor a
// cero registra un movimiento de entrada.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"omitempty,max=20"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=200"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye Stock: el
// stock solo cambia a través de movimientos.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=200"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	NeedsReorder bool            `json:"needs_reorder"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
