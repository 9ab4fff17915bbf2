package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// FieldError error de validación de un campo concreto.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo se llena en errores de
// validación; Product identifica al producto ofensor en errores de stock.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Product string       `json:"product,omitempty"`
}
