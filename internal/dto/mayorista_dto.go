package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineaPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ClienteMayoristaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=1,max=150"`
	Localidad string `json:"localidad" validate:"required,min=1,max=150"`
	Telefono  string `json:"telefono"  validate:"max=50"`
}

type FinalizarPedidoRequest struct {
	Items   []LineaPedidoRequest    `json:"items"   validate:"required,min=1,dive"`
	Cliente ClienteMayoristaRequest `json:"cliente" validate:"required"`
}

// InterpretarPedidoRequest accepts either free text (one product per line)
// or a single "AGREGAR: cantidad, producto, marca, sabor" command.
type InterpretarPedidoRequest struct {
	Texto string `json:"texto" validate:"required,min=1,max=10000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoMayoristaResponse struct {
	ID        string                  `json:"id"`
	Cliente   ClienteMayoristaRequest `json:"cliente"`
	Items     []calculo.LineaCarrito  `json:"items"`
	Total     decimal.Decimal         `json:"total"`
	Agotados  []string                `json:"agotados,omitempty"`
	Omitidas  []string                `json:"omitidas,omitempty"`
	CreatedAt string                  `json:"created_at"`
}

type InterpretarPedidoResponse struct {
	Items []calculo.LineaCarrito `json:"items"`
	Total decimal.Decimal        `json:"total"`
}

type ProductoCatalogo struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Sabores         []string        `json:"sabores"`
	Stock           int             `json:"stock"`
	PrecioMayorista decimal.Decimal `json:"precio_mayorista"`
}

type MarcaCatalogo struct {
	Marca     string             `json:"marca"`
	Productos []ProductoCatalogo `json:"productos"`
}
