package entity

import "time"

// Client representa un cliente. El número de documento (DNI, CUIT, cédula) es
// único; un cliente con ventas asociadas no puede eliminarse.
type Client struct {
	ID             string
	Name           string
	LastName       string
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName devuelve "Nombre Apellido".
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + c.LastName
}
