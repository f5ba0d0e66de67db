package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPartnerRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Telefono string `json:"telefono" validate:"max=50"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type CambiarEstadoPartnerRequest struct {
	Activo bool `json:"activo"`
}

type VentaPartnerRequest struct {
	PartnerID       string          `json:"partner_id"       validate:"required,uuid"`
	NombreCliente   string          `json:"nombre_cliente"   validate:"required,min=1,max=150"`
	TelefonoCliente string          `json:"telefono_cliente" validate:"max=50"`
	Fecha           string          `json:"fecha"            validate:"omitempty,datetime=2006-01-02"` // empty = today
	Monto           decimal.Decimal `json:"monto"            validate:"required,gt=0"`
	NombreProducto  string          `json:"nombre_producto"  validate:"max=200"`
	CuponUsado      string          `json:"cupon_usado"      validate:"required,oneof=trainer client"`
}

type MesFilter struct {
	Mes string `form:"mes" validate:"omitempty,datetime=2006-01"` // empty = current month
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PartnerResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	CuponPartner string `json:"cupon_partner"`
	CuponCliente string `json:"cupon_cliente"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	Activo       bool   `json:"activo"`
	CreatedAt    string `json:"created_at"`
}

type VentaPartnerResponse struct {
	ID              string          `json:"id"`
	PartnerID       string          `json:"partner_id"`
	NombreCliente   string          `json:"nombre_cliente"`
	TelefonoCliente string          `json:"telefono_cliente"`
	Fecha           string          `json:"fecha"`
	Monto           decimal.Decimal `json:"monto"`
	NombreProducto  string          `json:"nombre_producto"`
	CuponUsado      string          `json:"cupon_usado"`
}

type LiquidacionResponse struct {
	Mes      string                     `json:"mes"`
	Partners []calculo.Liquidacion      `json:"partners"`
	Totales  calculo.TotalesLiquidacion `json:"totales"`
}

type NotificacionLiquidacionResponse struct {
	Mes       string `json:"mes"`
	Encolados int    `json:"encolados"`
	SinEmail  int    `json:"sin_email"`
}
