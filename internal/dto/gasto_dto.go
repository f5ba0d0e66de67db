package dto

import (
	"dxy/internal/calculo"

	"github.com/shopspring/decimal"
)

type GastoRequest struct {
	Categoria string          `json:"categoria" validate:"required,min=1,max=100"`
	Monto     decimal.Decimal `json:"monto"     validate:"min=0"`
	Fecha     string          `json:"fecha"     validate:"required,datetime=2006-01"`
}

type GastoResponse struct {
	ID        string          `json:"id"`
	Categoria string          `json:"categoria"`
	Monto     decimal.Decimal `json:"monto"`
	Fecha     string          `json:"fecha"`
}

type GastosResponse struct {
	Data    []GastoResponse       `json:"data"`
	Resumen calculo.ResumenGastos `json:"resumen"`
}
