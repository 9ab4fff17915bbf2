package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/application/inventory"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
	"github.com/mvalderrama/inventario-api/pkg/sku"
)

const maxSKUAttempts = 10

// ProductUseCase gestión del catálogo de productos. La creación con stock
// inicial registra el movimiento de entrada correspondiente en la misma
// transacción; el resto de mutaciones de stock pasan por el motor de
// movimientos, nunca por aquí.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	skuGen      *sku.Generator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		skuGen:      sku.New(sku.PrefixProduct),
	}
}

// Create da de alta un producto. SKU vacío genera uno automáticamente
// (PROD-#####); si trae stock inicial queda documentado en el libro.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	code := in.SKU
	if code == "" {
		var err error
		code, err = uc.nextProductSKU()
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := uc.productRepo.ExistsSKU(code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         code,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.Stock > 0 {
			return movRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Type:      entity.MovementTypeEntrada,
				Quantity:  in.Stock,
				Date:      now,
				Reason:    "Stock inicial al crear el producto",
				CreatedBy: actor,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) nextProductSKU() (string, error) {
	for i := 0; i < maxSKUAttempts; i++ {
		code := uc.skuGen.Next()
		exists, err := uc.productRepo.ExistsSKU(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrDuplicate
}

// Update modifica nombre, descripción, precio y umbral de reposición.
// El stock no se edita aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.MinStock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price.Round(2)
	product.MinStock = in.MinStock
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Falla con ErrProtected si hay líneas de venta
// que lo referencian (FK RESTRICT).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente solo los de stock bajo.
func (uc *ProductUseCase) List(onlyLowStock bool, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(onlyLowStock, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, *toProductResponse(p))
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		NeedsReorder: p.NeedsReorder(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
