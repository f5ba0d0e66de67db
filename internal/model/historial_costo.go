package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistorialCosto registra cada cambio del costo de proveedor de un producto.
// Los registros son inmutables: nunca se eliminan ni modifican.
type HistorialCosto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostoAntes   decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	CostoDespues decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Motivo       string          `gorm:"not null"` // compra | manual
	ReferenciaID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (HistorialCosto) TableName() string { return "historial_costos" }

func (h *HistorialCosto) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
