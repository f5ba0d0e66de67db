package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Proveedores habituales de mercadería.
var Proveedores = []string{"Disfit", "Bunker", "ColoMayorista", "Suplemed", "Otro"}

// FacturaCompra is a purchase invoice header. Its lines are applied to stock
// once, at creation, and are not kept on the invoice.
type FacturaCompra struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Fecha           string          `gorm:"size:7;index;not null" json:"date"` // YYYY-MM
	Proveedor       string          `gorm:"not null" json:"vendor"`
	NumeroFactura   string          `json:"invoiceNumber,omitempty"`
	MontoMercaderia decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"goodsAmount"`
	CostoEnvio      decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"shippingCost"`
	Notas           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"-"`
}

func (FacturaCompra) TableName() string { return "facturas_compra" }

func (f *FacturaCompra) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
