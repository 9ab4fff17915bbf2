package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
	"github.com/mvalderrama/inventario-api/pkg/sku"
)

// Intentos máximos de generación de código antes de rendirse con ErrDuplicate.
// Con 90000 valores posibles la colisión repetida es prácticamente nula.
const maxSKUAttempts = 10

// SaleUseCase orquesta la vida de una venta: valida disponibilidad, calcula
// subtotales y total, persiste cabecera e ítems y descuenta stock línea por
// línea, todo en una sola transacción. La anulación restaura el stock con
// movimientos de entrada compensatorios.
type SaleUseCase struct {
	txRunner    TxRunner
	stock       StockService
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	receipts    ReceiptGenerator
	skuGen      *sku.Generator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	stock StockService,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	receipts ReceiptGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		stock:       stock,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		receipts:    receipts,
		skuGen:      sku.New(sku.PrefixSale),
	}
}

// validateItems revisa cantidades y precios de todas las líneas.
// Cantidad cero/negativa o precio no positivo invalidan la operación entera.
func validateItems(items []dto.SaleItemRequest) error {
	if len(items) == 0 {
		return domain.ErrEmptySale
	}
	for _, it := range items {
		if it.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if it.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if !it.UnitPrice.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

// CreateSale crea la venta completa. Valida stock para todas las líneas antes
// de escribir nada; dentro de la transacción cada producto se bloquea y se
// re-verifica, de modo que una venta concurrente que ganó la carrera provoca
// rollback en lugar de sobreventa.
func (uc *SaleUseCase) CreateSale(ctx context.Context, actor string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actor == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	// Pre-chequeo de existencia y disponibilidad (solo lectura, fuera de la
	// tx). La verificación vinculante ocurre bajo el lock de fila.
	for _, it := range in.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Stock < it.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				SKU:       product.SKU,
				Name:      product.Name,
				Available: product.Stock,
				Requested: it.Quantity,
			}
		}
	}

	now := time.Now()
	var sale *entity.Sale
	var items []*entity.SaleItem

	run := func() error {
		return uc.txRunner.RunSales(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
			saleRepo repository.SaleRepository,
		) error {
			code, err := uc.nextSaleSKU(saleRepo)
			if err != nil {
				return err
			}

			// 1) Subtotales y total con decimal, separados de la persistencia
			items = buildItems(in.Items)
			total := entity.SaleTotal(items)

			sale = &entity.Sale{
				ID:        uuid.New().String(),
				SKU:       code,
				ClientID:  in.ClientID,
				Date:      now,
				Total:     total,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			for _, item := range items {
				item.SaleID = sale.ID
				if err := saleRepo.CreateItem(item); err != nil {
					return err
				}
			}

			// 2) Descontar stock por línea: una salida en el libro por cada
			// una. Orden estable por producto para que ventas concurrentes
			// tomen los locks en el mismo orden y no se bloqueen entre sí.
			for _, item := range sortedByProduct(items) {
				if _, _, err := uc.stock.ApplyInTx(movRepo, productRepo,
					item.ProductID, entity.MovementTypeSalida, item.Quantity,
					"Venta "+code, actor, now); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Una colisión de código que ganó la carrera al constraint único aborta
	// la tx completa; se reintenta con un código nuevo de forma transparente.
	for attempt := 0; ; attempt++ {
		err = run()
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= 2 {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items, client.FullName()), nil
}

// nextSaleSKU sortea códigos hasta encontrar uno libre. El constraint único
// de la tabla sigue siendo la garantía real: si dos creaciones concurrentes
// aceptan el mismo código, una falla al insertar y reintenta completa.
func (uc *SaleUseCase) nextSaleSKU(saleRepo repository.SaleRepository) (string, error) {
	for i := 0; i < maxSKUAttempts; i++ {
		code := uc.skuGen.Next()
		exists, err := saleRepo.ExistsSKU(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrDuplicate
}

func buildItems(reqs []dto.SaleItemRequest) []*entity.SaleItem {
	items := make([]*entity.SaleItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			Subtotal:  entity.Subtotal(r.Quantity, r.UnitPrice),
		})
	}
	return items
}

func sortedByProduct(items []*entity.SaleItem) []*entity.SaleItem {
	sorted := make([]*entity.SaleItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	return sorted
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, clientName string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID,
		SKU:        sale.SKU,
		ClientID:   sale.ClientID,
		ClientName: clientName,
		Date:       sale.Date,
		Total:      sale.Total,
		Items:      make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
