package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductoFilter is bound from query string of GET /v1/productos.
type ProductoFilter struct {
	Q      string `form:"q"`      // substring of name, brand or flavor
	Estado string `form:"estado"` // OK | PEDIR | AGOTADO; empty = all
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int                `json:"total"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre            string          `json:"nombre"              validate:"required,min=1,max=200"`
	Marca             string          `json:"marca"               validate:"max=100"`
	CostoProveedor    decimal.Decimal `json:"costo_proveedor"     validate:"min=0"`
	CostoFlete        decimal.Decimal `json:"costo_flete"         validate:"min=0"`
	MarkupPct         decimal.Decimal `json:"markup_pct"          validate:"min=0"`
	RecargoTarjetaPct decimal.Decimal `json:"recargo_tarjeta_pct" validate:"min=0"`
	StockActual       int             `json:"stock_actual"        validate:"min=0"`
	StockMinimo       int             `json:"stock_minimo"        validate:"min=0"`
	Sabores           []string        `json:"sabores"             validate:"dive,min=1,max=60"`
	UnidadesPorCaja   int             `json:"unidades_por_caja"   validate:"omitempty,min=1"`
}

// ActualizarProductoRequest only changes the fields that are present.
type ActualizarProductoRequest struct {
	Nombre            *string          `json:"nombre"              validate:"omitempty,min=1,max=200"`
	Marca             *string          `json:"marca"               validate:"omitempty,max=100"`
	CostoProveedor    *decimal.Decimal `json:"costo_proveedor"     validate:"omitempty,min=0"`
	CostoFlete        *decimal.Decimal `json:"costo_flete"         validate:"omitempty,min=0"`
	MarkupPct         *decimal.Decimal `json:"markup_pct"          validate:"omitempty,min=0"`
	RecargoTarjetaPct *decimal.Decimal `json:"recargo_tarjeta_pct" validate:"omitempty,min=0"`
	StockMinimo       *int             `json:"stock_minimo"        validate:"omitempty,min=0"`
	Sabores           []string         `json:"sabores"             validate:"omitempty,dive,min=1,max=60"`
	UnidadesPorCaja   *int             `json:"unidades_por_caja"   validate:"omitempty,min=1"`
}

// AjustarStockRequest is the +/- stock button. Stock is floored at zero.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required,ne=0"`
	Motivo string `json:"motivo" validate:"max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID                string           `json:"id"`
	Nombre            string           `json:"nombre"`
	Marca             string           `json:"marca"`
	CostoProveedor    decimal.Decimal  `json:"costo_proveedor"`
	CostoFlete        decimal.Decimal  `json:"costo_flete"`
	MarkupPct         decimal.Decimal  `json:"markup_pct"`
	RecargoTarjetaPct decimal.Decimal  `json:"recargo_tarjeta_pct"`
	StockActual       int              `json:"stock_actual"`
	StockMinimo       int              `json:"stock_minimo"`
	Sabores           []string         `json:"sabores"`
	UnidadesPorCaja   int              `json:"unidades_por_caja"`
	Metricas          calculo.Metricas `json:"metricas"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	ReferenciaID  string `json:"referencia_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type MovimientoStockFilter struct {
	ProductoID   string `form:"producto_id"       validate:"omitempty,uuid"`
	ReferenciaID string `form:"referencia_id"     validate:"omitempty,uuid"` // pedido or factura
	Tipo         string `form:"tipo"`
	Desde        string `form:"desde"             validate:"omitempty,datetime=2006-01-02"`
	Hasta        string `form:"hasta"             validate:"omitempty,datetime=2006-01-02"` // inclusive
	Page         int    `form:"page,default=1"    validate:"min=1"`
	Limit        int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

type HistorialCostoResponse struct {
	ID           string          `json:"id"`
	CostoAntes   decimal.Decimal `json:"costo_antes"`
	CostoDespues decimal.Decimal `json:"costo_despues"`
	Motivo       string          `json:"motivo"`
	CreatedAt    string          `json:"created_at"`
}
