package repository

import "github.com/mvalderrama/inventario-api/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
// El campo Stock solo se escribe vía UpdateStock dentro de transacciones del
// motor de movimientos; GetForUpdate bloquea la fila (SELECT FOR UPDATE) para
// serializar el check-then-write sobre el contador.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	Delete(id string) error
	List(onlyLowStock bool, limit, offset int) ([]*entity.Product, error)
	ExistsSKU(sku string) (bool, error)
}
