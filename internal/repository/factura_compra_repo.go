package repository

import (
	"context"

	"dxy/internal/model"

	"gorm.io/gorm"
)

type FacturaCompraRepository interface {
	CreateTx(tx *gorm.DB, f *model.FacturaCompra) error
	// List returns invoices newest month first.
	List(ctx context.Context) ([]model.FacturaCompra, error)
	ReplaceAllTx(tx *gorm.DB, facturas []model.FacturaCompra) error
}

type facturaCompraRepo struct{ db *gorm.DB }

func NewFacturaCompraRepository(db *gorm.DB) FacturaCompraRepository {
	return &facturaCompraRepo{db: db}
}

func (r *facturaCompraRepo) CreateTx(tx *gorm.DB, f *model.FacturaCompra) error {
	return tx.Create(f).Error
}

func (r *facturaCompraRepo) List(ctx context.Context) ([]model.FacturaCompra, error) {
	var facturas []model.FacturaCompra
	err := r.db.WithContext(ctx).Order("fecha DESC").Order("created_at DESC").Find(&facturas).Error
	return facturas, err
}

func (r *facturaCompraRepo) ReplaceAllTx(tx *gorm.DB, facturas []model.FacturaCompra) error {
	return reemplazarTodo(tx, facturas)
}
