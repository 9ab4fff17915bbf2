package sales

import (
	"context"
	"time"

	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// DeleteSale anula la venta: restaura el stock de cada línea con un
// movimiento de entrada ("Cancelación de venta <código>") y borra la cabecera
// (los ítems caen por CASCADE). Los movimientos históricos de la venta no se
// tocan: la reversión queda registrada como movimientos nuevos. Todo en una
// transacción: o la venta desaparece con el stock restaurado completo, o no
// cambia nada.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, actor, saleID string) error {
	if actor == "" || saleID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := saleRepo.GetItems(sale.ID)
		if err != nil {
			return err
		}

		for _, item := range sortedByProduct(items) {
			if _, _, err := uc.stock.ApplyInTx(movRepo, productRepo,
				item.ProductID, entity.MovementTypeEntrada, item.Quantity,
				"Cancelación de venta "+sale.SKU, actor, now); err != nil {
				return err
			}
		}
		return saleRepo.Delete(sale.ID)
	})
}
