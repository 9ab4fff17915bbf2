package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/application/inventory"
	"github.com/mvalderrama/inventario-api/internal/application/sales"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memStore
	runner   *memTxRunner
	receipts *fakeReceipts
	saleUC   *sales.SaleUseCase
}

// newFixture arma el motor completo sobre el almacén en memoria:
// cliente "c1", producto "p1" (stock 10) y producto "p2" (stock 3).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	store.clients["c1"] = entity.Client{
		ID: "c1", Name: "Laura", LastName: "Gómez", DocumentNumber: "1098765432",
	}
	store.products["p1"] = entity.Product{
		ID: "p1", SKU: "PROD-11111", Name: "Café molido 500g", Price: dec("2.50"), Stock: 10, MinStock: 3,
	}
	store.products["p2"] = entity.Product{
		ID: "p2", SKU: "PROD-22222", Name: "Panela en bloque", Price: dec("1.20"), Stock: 3, MinStock: 1,
	}

	runner := &memTxRunner{s: store}
	productRepo := &memProductRepo{store}
	movRepo := &memMovementRepo{store}
	saleRepo := &memSaleRepo{store}
	clientRepo := &memClientRepo{store}
	receipts := &fakeReceipts{}

	stockUC := inventory.NewStockUseCase(runner, productRepo, movRepo)
	saleUC := sales.NewSaleUseCase(runner, stockUC, saleRepo, productRepo, clientRepo, receipts)

	return &fixture{store: store, runner: runner, receipts: receipts, saleUC: saleUC}
}

func (f *fixture) movementsFor(productID string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range f.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraSalidas(t *testing.T) {
	f := newFixture(t)

	resp, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")},
			{ProductID: "p2", Quantity: 2, UnitPrice: dec("1.20")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Total exacto: 4*2.50 + 2*1.20 = 12.40
	assert.True(t, resp.Total.Equal(dec("12.40")), "total esperado 12.40, obtenido %s", resp.Total)
	assert.Regexp(t, `^VENT-\d{5}$`, resp.SKU)
	assert.Equal(t, "Laura Gómez", resp.ClientName)
	require.Len(t, resp.Items, 2)

	// Stock descontado
	assert.Equal(t, 6, f.store.products["p1"].Stock)
	assert.Equal(t, 1, f.store.products["p2"].Stock)

	// Una salida en el libro por cada línea, con la razón "Venta <código>"
	movs1 := f.movementsFor("p1")
	require.Len(t, movs1, 1)
	assert.Equal(t, entity.MovementTypeSalida, movs1[0].Type)
	assert.Equal(t, 4, movs1[0].Quantity)
	assert.Equal(t, "Venta "+resp.SKU, movs1[0].Reason)
	assert.Equal(t, "vendedor1", movs1[0].CreatedBy)

	movs2 := f.movementsFor("p2")
	require.Len(t, movs2, 1)
	assert.Equal(t, 2, movs2[0].Quantity)

	// Cabecera e ítems persistidos
	assert.Len(t, f.store.sales, 1)
	assert.Len(t, f.store.items[resp.ID], 2)
}

func TestCreateSale_SubtotalesExactosSinDerivaDecimal(t *testing.T) {
	f := newFixture(t)

	// 3 * 0.10 con flotantes daría 0.30000000000000004; con decimal es 0.30.
	resp, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p2", Quantity: 3, UnitPrice: dec("0.10")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].Subtotal.Equal(dec("0.30")))
	assert.True(t, resp.Total.Equal(dec("0.30")))
}

func TestCreateSale_StockInsuficiente_NoEscribeNada(t *testing.T) {
	f := newFixture(t)

	// p2 solo tiene 3 unidades; la venta pide 5 en la segunda línea.
	_, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")},
			{ProductID: "p2", Quantity: 5, UnitPrice: dec("1.20")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "PROD-22222", stockErr.SKU)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Shortfall())

	// Nada quedó escrito: ni venta, ni ítems, ni movimientos, ni stock tocado.
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.store.movements)
	assert.Equal(t, 10, f.store.products["p1"].Stock)
	assert.Equal(t, 3, f.store.products["p2"].Stock)
}

// flakySaleRepo falla a partir de la n-ésima inserción de ítems para simular
// un error a mitad de transacción.
type flakySaleRepo struct {
	repository.SaleRepository
	failAfter int
	inserts   int
}

func (r *flakySaleRepo) CreateItem(item *entity.SaleItem) error {
	r.inserts++
	if r.inserts > r.failAfter {
		return errors.New("no queda espacio en disco")
	}
	return r.SaleRepository.CreateItem(item)
}

func TestCreateSale_ErrorAMitadDeTransaccion_HaceRollbackCompleto(t *testing.T) {
	f := newFixture(t)
	f.runner.saleRepoDecorator = func(repo repository.SaleRepository) repository.SaleRepository {
		return &flakySaleRepo{SaleRepository: repo, failAfter: 1}
	}

	_, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")},
			{ProductID: "p2", Quantity: 2, UnitPrice: dec("1.20")},
		},
	})
	require.Error(t, err)

	// La primera línea sí alcanzó a insertarse dentro de la tx, pero el
	// rollback lo revierte todo.
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.store.items)
	assert.Empty(t, f.store.movements)
	assert.Equal(t, 10, f.store.products["p1"].Stock)
}

func TestCreateSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{ClientID: "c1"})
	assert.ErrorIs(t, err, domain.ErrEmptySale, "venta sin líneas")

	_, err = f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0, UnitPrice: dec("2.50")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad cero")

	_, err = f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: -2, UnitPrice: dec("2.50")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad negativa")

	_, err = f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "precio cero")

	_, err = f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "desconocido",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: dec("2.50")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	_, err = f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "fantasma", Quantity: 1, UnitPrice: dec("2.50")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	// Ninguna validación fallida debe dejar rastro
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.store.movements)
}

// collidingCodeSaleRepo reporta como tomados los primeros sorteos del
// generador para forzar el re-sorteo del código de venta.
type collidingCodeSaleRepo struct {
	repository.SaleRepository
	collisions int
}

func (r *collidingCodeSaleRepo) ExistsSKU(sku string) (bool, error) {
	if r.collisions > 0 {
		r.collisions--
		return true, nil
	}
	return r.SaleRepository.ExistsSKU(sku)
}

func TestCreateSale_ResorteaCodigoAnteColision(t *testing.T) {
	f := newFixture(t)
	colliding := &collidingCodeSaleRepo{collisions: 3}
	f.runner.saleRepoDecorator = func(repo repository.SaleRepository) repository.SaleRepository {
		colliding.SaleRepository = repo
		return colliding
	}

	resp, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: dec("2.50")}},
	})
	require.NoError(t, err, "tras las colisiones debe encontrar un código libre")
	assert.Regexp(t, `^VENT-\d{5}$`, resp.SKU)
	assert.Equal(t, 0, colliding.collisions, "debe haber re-sorteado por cada colisión")
	assert.Len(t, f.store.sales, 1)
}

// duplicateCodeOnceSaleRepo simula perder la carrera contra el constraint
// único: el primer INSERT de la cabecera devuelve ErrDuplicate.
type duplicateCodeOnceSaleRepo struct {
	repository.SaleRepository
	fails int
}

func (r *duplicateCodeOnceSaleRepo) Create(sale *entity.Sale) error {
	if r.fails > 0 {
		r.fails--
		return domain.ErrDuplicate
	}
	return r.SaleRepository.Create(sale)
}

func TestCreateSale_ColisionEnElInsert_ReintentaTransparente(t *testing.T) {
	f := newFixture(t)
	flaky := &duplicateCodeOnceSaleRepo{fails: 1}
	f.runner.saleRepoDecorator = func(repo repository.SaleRepository) repository.SaleRepository {
		flaky.SaleRepository = repo
		return flaky
	}

	resp, err := f.saleUC.CreateSale(context.Background(), "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")}},
	})
	require.NoError(t, err, "el constraint perdido se reintenta con un código nuevo")
	assert.Regexp(t, `^VENT-\d{5}$`, resp.SKU)

	// Solo el intento exitoso deja rastro: una venta, una salida y un único
	// descuento de stock (el intento fallido se revirtió completo).
	assert.Len(t, f.store.sales, 1)
	require.Len(t, f.store.movements, 1)
	assert.Equal(t, 6, f.store.products["p1"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSale
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_RestauraStockConEntradasDeCancelacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.store.products["p1"].Stock)
	assert.True(t, resp.Total.Equal(dec("10.00")))

	require.NoError(t, f.saleUC.DeleteSale(ctx, "vendedor1", resp.ID))

	// Stock restaurado al valor original
	assert.Equal(t, 10, f.store.products["p1"].Stock)

	// La venta y sus ítems desaparecen
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.store.items)

	// El libro conserva la salida original y suma la entrada compensatoria
	movs := f.movementsFor("p1")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeSalida, movs[0].Type)
	assert.Equal(t, entity.MovementTypeEntrada, movs[1].Type)
	assert.Equal(t, 4, movs[1].Quantity)
	assert.Equal(t, "Cancelación de venta "+resp.SKU, movs[1].Reason)
}

func TestDeleteSale_NoExiste(t *testing.T) {
	f := newFixture(t)
	err := f.saleUC.DeleteSale(context.Background(), "vendedor1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_RecalculaTotalSinTocarStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")},
		},
	})
	require.NoError(t, err)
	movsAntes := len(f.store.movements)

	// Reducir la cantidad de 4 a 2: el total baja, el stock NO se repone.
	updated, err := f.saleUC.UpdateSale(ctx, "vendedor1", resp.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: dec("2.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, updated.Total.Equal(dec("5.00")), "total recalculado")
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)

	// El código y la fecha no cambian
	assert.Equal(t, resp.SKU, updated.SKU)
	assert.True(t, resp.Date.Equal(updated.Date))

	// La edición no mueve stock ni escribe en el libro
	assert.Equal(t, 6, f.store.products["p1"].Stock)
	assert.Equal(t, movsAntes, len(f.store.movements))
}

func TestUpdateSale_ReemplazaLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: dec("2.50")},
			{ProductID: "p2", Quantity: 1, UnitPrice: dec("1.20")},
		},
	})
	require.NoError(t, err)

	// El nuevo conjunto solo trae p1: la línea de p2 debe desaparecer.
	updated, err := f.saleUC.UpdateSale(ctx, "vendedor1", resp.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: dec("2.50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, "p1", updated.Items[0].ProductID)
	assert.True(t, updated.Total.Equal(dec("7.50")))
	assert.Len(t, f.store.items[resp.ID], 1)
}

func TestUpdateSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.saleUC.UpdateSale(ctx, "vendedor1", "no-existe", dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: dec("2.50")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.saleUC.UpdateSale(ctx, "vendedor1", "cualquiera", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptySale)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo: crear y anular vuelve al estado inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearYAnular_VuelveAlEstadoInicial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
			ClientID: "c1",
			Items: []dto.SaleItemRequest{
				{ProductID: "p1", Quantity: 2, UnitPrice: dec("2.50")},
				{ProductID: "p2", Quantity: 1, UnitPrice: dec("1.20")},
			},
		})
		require.NoError(t, err)
		require.NoError(t, f.saleUC.DeleteSale(ctx, "vendedor1", resp.ID))
	}

	assert.Equal(t, 10, f.store.products["p1"].Stock)
	assert.Equal(t, 3, f.store.products["p2"].Stock)
	assert.Empty(t, f.store.sales)
	// 3 ciclos * 2 líneas * (salida + entrada)
	assert.Len(t, f.store.movements, 12)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_IncluyeLineasYCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")}},
	})
	require.NoError(t, err)

	got, err := f.saleUC.GetSale(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SKU, got.SKU)
	assert.Equal(t, "Laura Gómez", got.ClientName)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Total.Equal(dec("10.00")))
}

func TestGetSale_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.saleUC.GetSale("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleReceiptPDF_ArmaLineasConDatosDelProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: dec("2.50")}},
	})
	require.NoError(t, err)

	pdfBytes, err := f.saleUC.SaleReceiptPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)

	require.Len(t, f.receipts.lastLines, 1)
	line := f.receipts.lastLines[0]
	assert.Equal(t, "PROD-11111", line.SKU)
	assert.Equal(t, "Café molido 500g", line.Description)
	assert.Equal(t, 4, line.Quantity)
	assert.True(t, line.Subtotal.Equal(dec("10.00")))
	assert.Equal(t, "c1", f.receipts.lastClient.ID)
}

func TestSalesByDay_AgregaTotalesPorFecha(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.saleUC.CreateSale(ctx, "vendedor1", dto.CreateSaleRequest{
			ClientID: "c1",
			Items:    []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: dec("2.50")}},
		})
		require.NoError(t, err)
	}

	report, err := f.saleUC.SalesByDay()
	require.NoError(t, err)
	require.Len(t, report, 1, "dos ventas del mismo día agregan en una fila")
	assert.True(t, report[0].Total.Equal(dec("5.00")))
}
