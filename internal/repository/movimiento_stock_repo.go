package repository

import (
	"context"
	"time"

	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoStockFilter narrows the stock audit trail. Hasta is exclusive.
type MovimientoStockFilter struct {
	ProductoID   *uuid.UUID
	ReferenciaID *uuid.UUID
	Tipo         string
	Desde        *time.Time
	Hasta        *time.Time
	Page         int
	Limit        int
}

type MovimientoStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, filter MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

// CreateTx only runs inside the transaction that also saves the product.
func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

// List returns one page, newest first, plus the total for the filter.
func (r *movimientoStockRepo) List(ctx context.Context, filter MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).Scopes(filtrarMovimientos(filter))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movimientos []model.MovimientoStock
	err := q.Order("created_at DESC").Scopes(paginar(filter.Page, filter.Limit)).Find(&movimientos).Error
	return movimientos, total, err
}

func filtrarMovimientos(f MovimientoStockFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ProductoID != nil {
			q = q.Where("producto_id = ?", *f.ProductoID)
		}
		if f.ReferenciaID != nil {
			q = q.Where("referencia_id = ?", *f.ReferenciaID)
		}
		if f.Tipo != "" {
			q = q.Where("tipo = ?", f.Tipo)
		}
		if f.Desde != nil {
			q = q.Where("created_at >= ?", *f.Desde)
		}
		if f.Hasta != nil {
			q = q.Where("created_at < ?", *f.Hasta)
		}
		return q
	}
}

// paginar clamps page and limit (1..500, default 100).
func paginar(page, limit int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Offset((page - 1) * limit).Limit(limit)
	}
}
