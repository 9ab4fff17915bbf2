package sales

import (
	"time"

	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/domain"
)

// GetSale obtiene una venta con sus líneas y el nombre del cliente.
func (uc *SaleUseCase) GetSale(saleID string) (*dto.SaleResponse, error) {
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
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(sale.ClientID); client != nil {
		clientName = client.FullName()
	}
	return toSaleResponse(sale, items, clientName), nil
}

// ListSales lista ventas con filtros opcionales por cliente y fecha.
func (uc *SaleUseCase) ListSales(clientID string, date *time.Time, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(clientID, date, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.SaleResponse{
			ID:       s.ID,
			SKU:      s.SKU,
			ClientID: s.ClientID,
			Date:     s.Date,
			Total:    s.Total,
		})
	}
	return resp, nil
}

// SalesByDay devuelve el total vendido por fecha, ordenado por fecha.
func (uc *SaleUseCase) SalesByDay() ([]dto.SalesByDayResponse, error) {
	rows, err := uc.saleRepo.TotalsByDay()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalesByDayResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.SalesByDayResponse{
			Date:  r.Date.Format("2006-01-02"),
			Total: r.Total,
		})
	}
	return resp, nil
}
