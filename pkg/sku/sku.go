// Package sku genera códigos legibles para productos y ventas
// (PROD-12345, VENT-67890). La unicidad real la garantiza el constraint
// único en la base; el generador solo sortea candidatos.
package sku

import (
	"fmt"
	"math/rand"
)

// Prefijos por tipo de entidad.
const (
	PrefixProduct = "PROD"
	PrefixSale    = "VENT"
)

// Generator sortea códigos "<prefijo>-<5 dígitos>". Es puro: no consulta
// almacenamiento; el caller decide si el candidato está libre y vuelve a
// sortear en caso de colisión.
type Generator struct {
	prefix string
}

// New construye un generador para el prefijo dado.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next devuelve un candidato nuevo, ej. "PROD-48213". El rango 10000-99999 da
// 90000 valores posibles, suficiente para que la colisión sea esporádica.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s-%d", g.prefix, 10000+rand.Intn(90000))
}

// Prefix devuelve el prefijo configurado.
func (g *Generator) Prefix() string {
	return g.prefix
}
