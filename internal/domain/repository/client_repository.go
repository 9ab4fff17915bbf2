package repository

import "github.com/mvalderrama/inventario-api/internal/domain/entity"

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByDocument(documentNumber string) (*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
	List(search string, limit, offset int) ([]*entity.Client, error)
}
