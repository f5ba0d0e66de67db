package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineaPedidoMayorista is a cart line frozen at checkout time.
type LineaPedidoMayorista struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// PedidoMayorista is the snapshot of a finalized wholesale order.
type PedidoMayorista struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ClienteNombre    string                 `gorm:"not null"`
	ClienteLocalidad string                 `gorm:"not null"`
	ClienteTelefono  string
	Items            []LineaPedidoMayorista `gorm:"type:text;serializer:json"`
	Total            decimal.Decimal        `gorm:"type:numeric(14,4);not null"`
	CreatedAt        time.Time
}

func (PedidoMayorista) TableName() string { return "pedidos_mayoristas" }

func (p *PedidoMayorista) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
