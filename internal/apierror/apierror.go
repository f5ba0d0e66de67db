// Package apierror holds the JSON error envelopes every handler answers with.
// Messages are meant for the operator; internals stay in the log.
package apierror

// Stable codes the front end can branch on without parsing Detail.
const (
	CodigoNoEncontrado     = "no_encontrado"
	CodigoDuplicado        = "duplicado"
	CodigoSinCoincidencias = "sin_coincidencias"
	CodigoAsistente        = "asistente"
	CodigoAsistenteCaido   = "asistente_no_disponible"
	CodigoValidacion       = "validacion"
)

// APIError is the error envelope for 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
	Codigo string `json:"codigo,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewCodigo(codigo, msg string) *APIError {
	return &APIError{Detail: msg, Codigo: codigo}
}

// ValidationError maps each failing field to the validator tag it broke.
type ValidationError struct {
	Detail string            `json:"detail"`
	Codigo string            `json:"codigo"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Codigo: CodigoValidacion, Fields: fields}
}
