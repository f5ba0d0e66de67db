package repository

import (
	"context"

	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	CreateBatch(ctx context.Context, gastos []model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context) ([]model.Gasto, error)
	Update(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAllTx(tx *gorm.DB, gastos []model.Gasto) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) CreateBatch(ctx context.Context, gastos []model.Gasto) error {
	if len(gastos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&gastos).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) List(ctx context.Context) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gastoRepo) ReplaceAllTx(tx *gorm.DB, gastos []model.Gasto) error {
	return reemplazarTodo(tx, gastos)
}
