package sales

import (
	"context"

	"github.com/mvalderrama/inventario-api/internal/domain"
)

// SaleReceiptPDF genera el comprobante PDF de una venta: cabecera, cliente,
// tabla de líneas (con nombre y SKU del producto) y total.
func (uc *SaleUseCase) SaleReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(sale.ClientID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		line := ReceiptLine{
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
		if product, _ := uc.productRepo.GetByID(it.ProductID); product != nil {
			line.SKU = product.SKU
			line.Description = product.Name
		}
		lines = append(lines, line)
	}
	return uc.receipts.GenerateSaleReceipt(ctx, sale, client, lines)
}
