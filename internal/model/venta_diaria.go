package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Canales de venta.
const (
	CanalFisica = "Física"
	CanalOnline = "Online"
)

// Métodos de pago aceptados en el registro diario.
const (
	PagoEfectivo      = "Efectivo"
	PagoTransferencia = "Transferencia"
	PagoCredito       = "Tarjeta Crédito"
	PagoDebito        = "Débito"
	PagoBancor        = "Bancor"
	PagoCartaPersonal = "Carta Personal"
	PagoCanje         = "Canje/Servicio"
)

// MetodosPago lists every payment method in display order.
var MetodosPago = []string{
	PagoEfectivo, PagoTransferencia, PagoCredito, PagoDebito, PagoBancor, PagoCartaPersonal, PagoCanje,
}

// VentaDiaria is one line of the daily sales ledger. It always represents a
// single unit sold; NombreProducto is free text, not a reference to Producto.
type VentaDiaria struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Fecha          string          `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	NombreProducto string          `gorm:"not null" json:"productName"`
	Canal          string          `gorm:"not null;default:'Física'" json:"channel"`
	MetodoPago     string          `gorm:"not null;default:'Efectivo'" json:"paymentMethod"`
	MontoTotal     decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"totalAmount"`
	// MontoPagado may be lower than MontoTotal for deposits, or 0 for Canje/Servicio.
	MontoPagado    decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"amountPaid"`
	CreatedAt      time.Time       `json:"-"`
}

func (VentaDiaria) TableName() string { return "ventas_diarias" }

func (v *VentaDiaria) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
