package sales_test

import (
	"context"
	"time"

	"github.com/mvalderrama/inventario-api/internal/application/sales"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional: el TxRunner toma un snapshot
// antes de ejecutar el callback y lo restaura si falla, igual que un rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]entity.Product
	movements []entity.StockMovement
	sales     map[string]entity.Sale
	items     map[string][]entity.SaleItem
	clients   map[string]entity.Client
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]entity.Product{},
		sales:    map[string]entity.Sale{},
		items:    map[string][]entity.SaleItem{},
		clients:  map[string]entity.Client{},
	}
}

func (s *memStore) snapshot() memStore {
	cp := memStore{
		products:  make(map[string]entity.Product, len(s.products)),
		movements: append([]entity.StockMovement(nil), s.movements...),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		items:     make(map[string][]entity.SaleItem, len(s.items)),
		clients:   make(map[string]entity.Client, len(s.clients)),
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.sales {
		cp.sales[k] = v
	}
	for k, v := range s.items {
		cp.items[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range s.clients {
		cp.clients[k] = v
	}
	return cp
}

func (s *memStore) restore(snap memStore) {
	*s = snap
}

// ── Repos sobre el almacén ────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: los tests son secuenciales.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) UpdateStock(id string, stock int) error {
	p := r.s.products[id]
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) List(onlyLowStock bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if onlyLowStock && !p.NeedsReorder() {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ExistsSKU(sku string) (bool, error) {
	p, _ := r.GetBySKU(sku)
	return p != nil, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.movements[i].ProductID == productID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], *item)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := sale
	return &cp, nil
}

func (r *memSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.items[saleID] {
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSaleRepo) DeleteItems(saleID string) error {
	delete(r.s.items, saleID)
	return nil
}

func (r *memSaleRepo) Update(sale *entity.Sale) error {
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	delete(r.s.items, id) // emula el ON DELETE CASCADE
	return nil
}

func (r *memSaleRepo) List(clientID string, date *time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if clientID != "" && sale.ClientID != clientID {
			continue
		}
		if date != nil && !sameDay(sale.Date, *date) {
			continue
		}
		cp := sale
		out = append(out, &cp)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *memSaleRepo) ExistsSKU(sku string) (bool, error) {
	for _, sale := range r.s.sales {
		if sale.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) TotalsByDay() ([]*entity.SalesByDay, error) {
	byDay := map[string]*entity.SalesByDay{}
	for _, sale := range r.s.sales {
		day := sale.Date.Format("2006-01-02")
		if agg, ok := byDay[day]; ok {
			agg.Total = agg.Total.Add(sale.Total)
			continue
		}
		y, m, d := sale.Date.Date()
		byDay[day] = &entity.SalesByDay{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Total: sale.Total,
		}
	}
	var out []*entity.SalesByDay
	for _, agg := range byDay {
		out = append(out, agg)
	}
	return out, nil
}

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	r.s.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *memClientRepo) GetByDocument(doc string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.DocumentNumber == doc {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	r.s.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.s.clients, id)
	return nil
}

func (r *memClientRepo) List(search string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

// ── TxRunner con snapshot/rollback ────────────────────────────────────────────

// memTxRunner implementa inventory.TxRunner y sales.TxRunner contra el
// almacén en memoria. saleRepoDecorator permite inyectar fallos para probar
// que un error a mitad de transacción no deja rastro.
type memTxRunner struct {
	s                 *memStore
	saleRepoDecorator func(repository.SaleRepository) repository.SaleRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&memMovementRepo{r.s}, &memProductRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) RunSales(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := r.s.snapshot()
	var saleRepo repository.SaleRepository = &memSaleRepo{r.s}
	if r.saleRepoDecorator != nil {
		saleRepo = r.saleRepoDecorator(saleRepo)
	}
	if err := fn(&memMovementRepo{r.s}, &memProductRepo{r.s}, saleRepo); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── Generador de comprobantes de prueba ───────────────────────────────────────

type fakeReceipts struct {
	lastSale   *entity.Sale
	lastClient *entity.Client
	lastLines  []sales.ReceiptLine
}

func (f *fakeReceipts) GenerateSaleReceipt(_ context.Context, sale *entity.Sale, client *entity.Client, lines []sales.ReceiptLine) ([]byte, error) {
	f.lastSale = sale
	f.lastClient = client
	f.lastLines = lines
	return []byte("%PDF-prueba"), nil
}
