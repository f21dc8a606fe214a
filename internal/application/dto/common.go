package dto

// ErrorResponse cuerpo de error HTTP. Fields solo en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta de mutaciones: mensaje + recurso afectado.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
