package repository

import (
	"time"

	"github.com/mvalderrama/inventario-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas y sus ítems. Delete borra la
// cabecera y los ítems caen por FK ON DELETE CASCADE.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	DeleteItems(saleID string) error
	Update(sale *entity.Sale) error
	Delete(id string) error
	List(clientID string, date *time.Time, limit, offset int) ([]*entity.Sale, error)
	ExistsSKU(sku string) (bool, error)
	TotalsByDay() ([]*entity.SalesByDay, error)
}
