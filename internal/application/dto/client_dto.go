package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	DocumentNumber string `json:"document_number" validate:"required,max=20"`
	Email          string `json:"email" validate:"omitempty,email,max=100"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Address        string `json:"address" validate:"omitempty,max=200"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	DocumentNumber string `json:"document_number" validate:"required,max=20"`
	Email          string `json:"email" validate:"omitempty,email,max=100"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Address        string `json:"address" validate:"omitempty,max=200"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LastName       string    `json:"last_name"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
