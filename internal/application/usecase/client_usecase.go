package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/domain"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
	"github.com/mvalderrama/inventario-api/internal/domain/repository"
)

// ClientUseCase gestión de clientes.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create da de alta un cliente. El número de documento es único.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.DocumentNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.clientRepo.GetByDocument(in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		Name:           in.Name,
		LastName:       in.LastName,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update modifica los datos de un cliente.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.DocumentNumber != client.DocumentNumber {
		other, err := uc.clientRepo.GetByDocument(in.DocumentNumber)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	client.Name = in.Name
	client.LastName = in.LastName
	client.DocumentNumber = in.DocumentNumber
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente. Falla con ErrProtected si tiene ventas
// asociadas (FK RESTRICT).
func (uc *ClientUseCase) Delete(id string) error {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(id)
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes con búsqueda por nombre/apellido/documento.
func (uc *ClientUseCase) List(search string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.clientRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, *toClientResponse(c))
	}
	return resp, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		LastName:       c.LastName,
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
