package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// StockUseCase aplica movimientos de stock de forma transaccional: bloquea la
// fila del producto (SELECT FOR UPDATE), verifica disponibilidad para salidas
// y escribe el movimiento en el libro dentro de la misma transacción.
// Es el único punto por el que se muta Product.Stock.
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento directo.
type MovementInput struct {
	ProductID string
	Type      string // entrada, salida, ajuste
	Quantity  int
	Reason    string
	Actor     string
}

// MovementResult producto actualizado y movimiento creado.
type MovementResult struct {
	Product  *entity.Product
	Movement *entity.StockMovement
}

// ApplyMovement registra un movimiento dentro de una transacción.
// Para "salida" falla con InsufficientStockError si el stock no alcanza;
// "entrada" suma incondicionalmente; "ajuste" solo registra en el libro sin
// tocar el stock (el delta real de una corrección se expresa como
// entrada/salida, ver SetStock).
func (uc *StockUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.ProductID == "" || input.Actor == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, movement, err := uc.ApplyInTx(movRepo, productRepo,
			input.ProductID, input.Type, input.Quantity, input.Reason, input.Actor, now)
		if err != nil {
			return err
		}
		result = MovementResult{Product: product, Movement: movement}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ApplyInTx aplica un movimiento usando los repositorios del caller (misma
// transacción). Bloquea la fila del producto antes de verificar stock, de modo
// que ventas concurrentes sobre el mismo producto serialicen su
// check-then-write. Lo usa el motor de ventas para descontar y restaurar
// stock línea por línea.
func (uc *StockUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID, movType string,
	quantity int,
	reason, actor string,
	now time.Time,
) (*entity.Product, *entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	newStock := product.Stock
	switch movType {
	case entity.MovementTypeSalida:
		if product.Stock < quantity {
			return nil, nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				SKU:       product.SKU,
				Name:      product.Name,
				Available: product.Stock,
				Requested: quantity,
			}
		}
		newStock = product.Stock - quantity
	case entity.MovementTypeEntrada:
		newStock = product.Stock + quantity
	case entity.MovementTypeAjuste:
		// solo deja constancia en el libro
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	if newStock != product.Stock {
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return nil, nil, err
		}
		product.Stock = newStock
	}

	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movType,
		Quantity:  quantity,
		Date:      now,
		Reason:    reason,
		CreatedBy: actor,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// SetStockInput entrada para un ajuste absoluto de stock.
type SetStockInput struct {
	ProductID   string
	NewQuantity int
	Reason      string
	Actor       string
}

// SetStockResult resultado del ajuste. Movement es nil cuando Delta es 0.
type SetStockResult struct {
	Product  *entity.Product
	Movement *entity.StockMovement
	Delta    int
}

// SetStock lleva el stock del producto a una cantidad absoluta. El delta
// contra el stock actual se registra como entrada o salida; delta cero no
// crea movimiento ni toca la fila.
func (uc *StockUseCase) SetStock(ctx context.Context, input SetStockInput) (*SetStockResult, error) {
	if input.NewQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.ProductID == "" || input.Actor == "" {
		return nil, domain.ErrInvalidInput
	}
	reason := input.Reason
	if reason == "" {
		reason = "Ajuste de stock"
	}

	now := time.Now()
	var result SetStockResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		delta := input.NewQuantity - product.Stock
		if delta == 0 {
			result = SetStockResult{Product: product, Delta: 0}
			return nil
		}

		movType := entity.MovementTypeEntrada
		quantity := delta
		if delta < 0 {
			movType = entity.MovementTypeSalida
			quantity = -delta
		}
		if err := productRepo.UpdateStock(product.ID, input.NewQuantity); err != nil {
			return err
		}
		product.Stock = input.NewQuantity

		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      movType,
			Quantity:  quantity,
			Date:      now,
			Reason:    reason,
			CreatedBy: input.Actor,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		result = SetStockResult{Product: product, Movement: movement, Delta: delta}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMovements lista los movimientos de un producto, más recientes primero.
func (uc *StockUseCase) ListMovements(productID string, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 10
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(productID, limit)
}

// ListLowStock lista los productos con stock por debajo de su umbral de
// reposición, paginado.
func (uc *StockUseCase) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(true, limit, offset)
}
