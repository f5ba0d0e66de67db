package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de movimiento de stock.
const (
	MovimientoAjusteManual    = "ajuste_manual"
	MovimientoVenta           = "venta"
	MovimientoPedidoMayorista = "pedido_mayorista"
	MovimientoCompra          = "compra"
)

// MovimientoStock registra cada cambio de stock en un producto.
// Se crea automáticamente al vender, ajustar, despachar un pedido o registrar una compra.
type MovimientoStock struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductoID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Tipo          string     `gorm:"not null;index"`
	Cantidad      int        `gorm:"not null"` // positive = entrada, negative = salida
	StockAnterior int        `gorm:"not null"`
	StockNuevo    int        `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // pedido or factura id if applicable
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }

func (m *MovimientoStock) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
