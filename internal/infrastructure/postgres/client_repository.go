package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, last_name, document_number, email, phone, address, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.LastName, client.DocumentNumber,
		client.Email, client.Phone, client.Address, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) scanOne(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.DocumentNumber,
		&c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByDocument obtiene un cliente por número de documento.
func (r *ClientRepo) GetByDocument(documentNumber string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE document_number = $1`
	c, err := r.scanOne(r.q.QueryRow(context.Background(), query, documentNumber))
	if err != nil {
		return nil, fmt.Errorf("get client by document: %w", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, last_name = $3, document_number = $4, email = $5,
		    phone = $6, address = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.LastName, client.DocumentNumber,
		client.Email, client.Phone, client.Address, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente. Las ventas lo protegen vía FK RESTRICT.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProtected
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// List lista clientes ordenados por apellido y nombre, con búsqueda opcional
// por nombre, apellido o documento.
func (r *ClientRepo) List(search string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(` WHERE name ILIKE $%d OR last_name ILIKE $%d OR document_number ILIKE $%d`, pos, pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(` ORDER BY last_name, name LIMIT $%d OFFSET $%d`, pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LastName, &c.DocumentNumber,
			&c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
