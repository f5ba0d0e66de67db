package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cupones usados en una venta de partner.
const (
	CuponTrainer = "trainer" // compra propia del partner
	CuponCliente = "client"  // compra de un cliente referido
)

// Partner is a trainer or coach that refers clients. Partners are
// deactivated, never deleted.
type Partner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre       string    `gorm:"not null" json:"name"`
	CuponPartner string    `gorm:"uniqueIndex;not null" json:"trainerCoupon"`
	CuponCliente string    `gorm:"uniqueIndex;not null" json:"clientCoupon"`
	Telefono     string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Activo       bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p *Partner) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// VentaPartner is a sale attributed to a partner, either with the partner's
// own coupon or with the coupon handed to their clients.
type VentaPartner struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PartnerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"trainerId"`
	NombreCliente   string          `gorm:"not null" json:"clientName"`
	TelefonoCliente string          `json:"clientPhone,omitempty"`
	Fecha           string          `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Monto           decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"amount"`
	NombreProducto  string          `json:"productName"`
	CuponUsado      string          `gorm:"not null" json:"couponUsed"`
	CreatedAt       time.Time       `json:"-"`
}

func (VentaPartner) TableName() string { return "ventas_partners" }

func (v *VentaPartner) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
