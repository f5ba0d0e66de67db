package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ConsejoRequest struct {
	Tipo     string `json:"tipo"     validate:"required,oneof=inventario ventas"`
	Consulta string `json:"consulta" validate:"required_if=Tipo ventas,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ConsejoResponse is the state of an advice job. Texto is set once Estado is
// "listo"; Error once it is "fallido".
type ConsejoResponse struct {
	ID     string `json:"id"`
	Estado string `json:"estado"` // pendiente | listo | fallido
	Texto  string `json:"texto,omitempty"`
	Error  string `json:"error,omitempty"`
}

type TranscripcionResponse struct {
	Texto string `json:"texto"`
}
