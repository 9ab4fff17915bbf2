package sales

import (
	"context"
	"time"

	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// UpdateSale reemplaza el conjunto de líneas de la venta y recalcula
// subtotales y total, igual que en la creación. Las líneas ausentes del nuevo
// conjunto se eliminan. La fecha y el código no cambian.
//
// La edición NO toca stock ni libro: solo la creación y la anulación mueven
// stock, por lo que editar cantidades deja el stock desincronizado de lo
// vendido.
// TODO: reconciliar stock contra el delta de cantidades al editar una venta.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, actor, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if actor == "" || saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	var sale *entity.Sale
	var items []*entity.SaleItem

	err := uc.txRunner.RunSales(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		items = buildItems(in.Items)
		for _, item := range items {
			item.SaleID = sale.ID
		}
		sale.Total = entity.SaleTotal(items)
		sale.UpdatedAt = now

		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		if err := saleRepo.DeleteItems(sale.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	clientName := ""
	if client, _ := uc.clientRepo.GetByID(sale.ClientID); client != nil {
		clientName = client.FullName()
	}
	return toSaleResponse(sale, items, clientName), nil
}
