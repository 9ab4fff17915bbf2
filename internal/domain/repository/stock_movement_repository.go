package repository

import "github.com/mvalderrama/inventario-api/internal/domain/entity"

// StockMovementRepository puerto del libro de movimientos. Solo inserta y
// lista: el libro es append-only, no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit int) ([]*entity.StockMovement, error)
}
