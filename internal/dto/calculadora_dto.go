package dto

import "github.com/shopspring/decimal"

type ItemComboRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"omitempty,min=1"`
}

type ComboRequest struct {
	Items []ItemComboRequest `json:"items" validate:"required,min=2,dive"`
}

type BeneficioRequest struct {
	MontoBase decimal.Decimal `json:"monto_base" validate:"required,gt=0"`
	Perfil    string          `json:"perfil"     validate:"required"`
}

type BeneficioResponse struct {
	MontoBase   decimal.Decimal `json:"monto_base"`
	Perfil      string          `json:"perfil"`
	PrecioFinal decimal.Decimal `json:"precio_final"`
	Ahorro      decimal.Decimal `json:"ahorro"`
}
