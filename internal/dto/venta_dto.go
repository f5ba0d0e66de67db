package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Mes string `form:"mes" validate:"omitempty,datetime=2006-01"` // empty = current month
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaRequest is one ledger line. MontoPagado defaults to MontoTotal when absent.
type VentaRequest struct {
	Fecha          string           `json:"fecha"           validate:"required,datetime=2006-01-02"`
	NombreProducto string           `json:"nombre_producto" validate:"required,min=1,max=200"`
	Canal          string           `json:"canal"           validate:"omitempty,oneof=Física Online"`
	MetodoPago     string           `json:"metodo_pago"     validate:"omitempty,metodo_pago"`
	MontoTotal     decimal.Decimal  `json:"monto_total"     validate:"required,gt=0"`
	MontoPagado    *decimal.Decimal `json:"monto_pagado"    validate:"omitempty,min=0"`
}

type RegistrarVentasRequest struct {
	Ventas         []VentaRequest `json:"ventas"          validate:"required,min=1,dive"`
	DescontarStock bool           `json:"descontar_stock"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID             string          `json:"id"`
	Fecha          string          `json:"fecha"`
	NombreProducto string          `json:"nombre_producto"`
	Canal          string          `json:"canal"`
	MetodoPago     string          `json:"metodo_pago"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	Saldo          decimal.Decimal `json:"saldo"`
}

type VentaListResponse struct {
	Data           []VentaResponse `json:"data"`
	Mes            string          `json:"mes"`
	Cobrado        decimal.Decimal `json:"cobrado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
}

type RegistrarVentasResponse struct {
	Ventas          []VentaResponse `json:"ventas"`
	StockDescontado int             `json:"stock_descontado"`
	SinCoincidencia []string        `json:"sin_coincidencia,omitempty"`
}

type DistribucionPagosResponse struct {
	Mes   string                   `json:"mes"`
	Total decimal.Decimal          `json:"total"`
	Data  []calculo.PorcentajePago `json:"data"`
}
