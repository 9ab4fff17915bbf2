package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sku, client_id, date, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SKU, sale.ClientID, sale.Date, sale.Total,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, sku, client_id, date, total, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SKU, &s.ClientID, &s.Date, &s.Total, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItems obtiene las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// DeleteItems borra todas las líneas de la venta (para reemplazarlas en una edición).
func (r *SaleRepo) DeleteItems(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return nil
}

// Update actualiza total y updated_at de la cabecera. Fecha y código son inmutables.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `UPDATE sales SET total = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, sale.ID, sale.Total, sale.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la venta; los ítems caen por FK ON DELETE CASCADE.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List lista ventas con filtros opcionales por cliente y fecha, más recientes primero.
func (r *SaleRepo) List(clientID string, date *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, sku, client_id, date, total, created_at, updated_at
		FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if clientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, clientID)
		pos++
	}
	if date != nil {
		query += fmt.Sprintf(" AND date::date = $%d::date", pos)
		args = append(args, *date)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SKU, &s.ClientID, &s.Date, &s.Total,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsSKU verifica si el código de venta ya está tomado.
func (r *SaleRepo) ExistsSKU(sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM sales WHERE sku = $1)`, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists sale sku: %w", err)
	}
	return exists, nil
}

// TotalsByDay agrega el total vendido por fecha, ordenado por fecha.
func (r *SaleRepo) TotalsByDay() ([]*entity.SalesByDay, error) {
	query := `
		SELECT date::date AS day, SUM(total)
		FROM sales GROUP BY day ORDER BY day`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("totals by day: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesByDay
	for rows.Next() {
		var d entity.SalesByDay
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, fmt.Errorf("scan totals by day: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
