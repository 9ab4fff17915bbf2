package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de stock y de ventas. Todo el alta/baja de una venta ocurre
// dentro de una sola llamada a RunSales: o se confirma completa o no queda
// nada (ni venta, ni ítems, ni stock, ni movimientos).
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockService integra el motor de ventas con el de stock. ApplyInTx aplica
// un movimiento usando los repositorios del caller (misma transacción);
// si retorna error (ej: InsufficientStockError) el caller hace rollback.
type StockService interface {
	ApplyInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		productID, movType string,
		quantity int,
		reason, actor string,
		now time.Time,
	) (*entity.Product, *entity.StockMovement, error)
}

// ReceiptLine línea para la representación PDF de una venta.
type ReceiptLine struct {
	SKU         string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, client *entity.Client, lines []ReceiptLine) ([]byte, error)
}
