package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Gasto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Categoria string          `gorm:"not null" json:"category"`
	Monto     decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"amount"`
	Fecha     string          `gorm:"size:7;not null" json:"date"` // YYYY-MM
	CreatedAt time.Time       `json:"-"`
}

func (g *Gasto) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
