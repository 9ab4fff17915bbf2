package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Stock es la cantidad actual y
// solo se muta a través del motor de movimientos; MinStock es el umbral de
// reposición.
type Product struct {
	ID          string
	SKU         string // código único, ej. PROD-12345
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, 2 decimales
	Stock       int
	MinStock    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NeedsReorder indica si el stock cayó por debajo del umbral de reposición.
func (p *Product) NeedsReorder() bool {
	return p.Stock < p.MinStock
}
