package repository

import (
	"context"

	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistorialCostoRepository interface {
	CreateTx(tx *gorm.DB, h *model.HistorialCosto) error
	ListByProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.HistorialCosto, error)
}

type historialCostoRepository struct{ db *gorm.DB }

func NewHistorialCostoRepository(db *gorm.DB) HistorialCostoRepository {
	return &historialCostoRepository{db: db}
}

func (r *historialCostoRepository) CreateTx(tx *gorm.DB, h *model.HistorialCosto) error {
	return tx.Create(h).Error
}

// ListByProducto returns cost changes newest-first (append-only table, so
// this reflects natural insert order).
func (r *historialCostoRepository) ListByProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.HistorialCosto, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var rows []model.HistorialCosto
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
