package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineaCompraRequest struct {
	ProductoID     string           `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int              `json:"cantidad"        validate:"required,min=1"`
	CostoProveedor *decimal.Decimal `json:"costo_proveedor" validate:"omitempty,gt=0"`
}

type RegistrarCompraRequest struct {
	Fecha            string               `json:"fecha"             validate:"required,datetime=2006-01"`
	Proveedor        string               `json:"proveedor"         validate:"required,oneof=Disfit Bunker ColoMayorista Suplemed Otro"`
	NumeroFactura    string               `json:"numero_factura"    validate:"max=50"`
	MontoMercaderia  decimal.Decimal      `json:"monto_mercaderia"  validate:"min=0"`
	CostoEnvio       decimal.Decimal      `json:"costo_envio"       validate:"min=0"`
	Notas            string               `json:"notas"             validate:"max=1000"`
	Items            []LineaCompraRequest `json:"items"             validate:"omitempty,dive"`
	ActualizarCostos bool                 `json:"actualizar_costos"`
}

type InterpretarFacturaRequest struct {
	Texto string `json:"texto" validate:"required,min=1,max=20000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FacturaCompraResponse struct {
	ID              string          `json:"id"`
	Fecha           string          `json:"fecha"`
	Proveedor       string          `json:"proveedor"`
	NumeroFactura   string          `json:"numero_factura"`
	MontoMercaderia decimal.Decimal `json:"monto_mercaderia"`
	CostoEnvio      decimal.Decimal `json:"costo_envio"`
	Total           decimal.Decimal `json:"total"`
	Notas           string          `json:"notas"`
}

type RegistrarCompraResponse struct {
	Factura            FacturaCompraResponse `json:"factura"`
	LineasAplicadas    int                   `json:"lineas_aplicadas"`
	CostosActualizados int                   `json:"costos_actualizados"`
	Omitidas           []string              `json:"omitidas,omitempty"`
}

// CambioCosto previews how a parsed invoice line would change a product cost.
type CambioCosto struct {
	ProductoID  string          `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Cantidad    int             `json:"cantidad"`
	CostoActual decimal.Decimal `json:"costo_actual"`
	CostoNuevo  decimal.Decimal `json:"costo_nuevo"`
	Cambia      bool            `json:"cambia"`
}

type InterpretarFacturaResponse struct {
	Items    []LineaCompraRequest `json:"items"`
	Cambios  []CambioCosto        `json:"cambios"`
	Omitidas int                  `json:"omitidas"`
}

type ReporteComprasResponse struct {
	Data []calculo.ComprasMes `json:"data"`
}
