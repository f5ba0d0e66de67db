package repository

import (
	"context"

	"dxy/internal/model"

	"gorm.io/gorm"
)

type PedidoMayoristaRepository interface {
	CreateTx(tx *gorm.DB, p *model.PedidoMayorista) error
	ListRecientes(ctx context.Context, limit int) ([]model.PedidoMayorista, error)
}

type pedidoMayoristaRepo struct{ db *gorm.DB }

func NewPedidoMayoristaRepository(db *gorm.DB) PedidoMayoristaRepository {
	return &pedidoMayoristaRepo{db: db}
}

func (r *pedidoMayoristaRepo) CreateTx(tx *gorm.DB, p *model.PedidoMayorista) error {
	return tx.Create(p).Error
}

func (r *pedidoMayoristaRepo) ListRecientes(ctx context.Context, limit int) ([]model.PedidoMayorista, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var pedidos []model.PedidoMayorista
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&pedidos).Error
	return pedidos, err
}
