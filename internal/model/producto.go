package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is a catalog item. Prices are never stored: they are derived from
// the cost fields on every read (see calculo.CalcularMetricas).
type Producto struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre            string          `gorm:"index;not null" json:"name"`
	Marca             string          `gorm:"index" json:"brand,omitempty"`
	CostoProveedor    decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"providerCost"`
	CostoFlete        decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"freightCost"`
	MarkupPct         decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"markupPercent"`
	RecargoTarjetaPct decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"cardSurchargePercent"`
	StockActual       int             `gorm:"not null;default:0" json:"currentStock"`
	StockMinimo       int             `gorm:"not null;default:0" json:"minStock"`
	Sabores           []string        `gorm:"type:text;serializer:json" json:"flavors"`
	UnidadesPorCaja   int             `gorm:"not null;default:1" json:"unitsPerBox"`
	CreatedAt         time.Time       `json:"-"`
	UpdatedAt         time.Time       `json:"-"`
}

func (p *Producto) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UnidadesPorCaja < 1 {
		p.UnidadesPorCaja = 1
	}
	return nil
}

// NombreCompleto is how a product is shown on wholesale order lines.
func (p Producto) NombreCompleto() string {
	s := p.Nombre
	if p.Marca != "" {
		s = p.Marca + " - " + s
	}
	if len(p.Sabores) > 0 {
		s += " " + strings.Join(p.Sabores, ", ")
	}
	return s
}
