package repository

import (
	"context"

	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaDiariaRepository interface {
	CreateBatchTx(tx *gorm.DB, ventas []model.VentaDiaria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VentaDiaria, error)
	Update(ctx context.Context, v *model.VentaDiaria) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByMes returns the sales whose date starts with mes (YYYY-MM).
	// An empty mes returns every sale.
	ListByMes(ctx context.Context, mes string) ([]model.VentaDiaria, error)
	ReplaceAllTx(tx *gorm.DB, ventas []model.VentaDiaria) error
	DB() *gorm.DB
}

type ventaDiariaRepo struct{ db *gorm.DB }

func NewVentaDiariaRepository(db *gorm.DB) VentaDiariaRepository { return &ventaDiariaRepo{db: db} }

func (r *ventaDiariaRepo) CreateBatchTx(tx *gorm.DB, ventas []model.VentaDiaria) error {
	if len(ventas) == 0 {
		return nil
	}
	return tx.Create(&ventas).Error
}

func (r *ventaDiariaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.VentaDiaria, error) {
	var v model.VentaDiaria
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaDiariaRepo) Update(ctx context.Context, v *model.VentaDiaria) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ventaDiariaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.VentaDiaria{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ventaDiariaRepo) ListByMes(ctx context.Context, mes string) ([]model.VentaDiaria, error) {
	q := r.db.WithContext(ctx).Model(&model.VentaDiaria{})
	if mes != "" {
		q = q.Where("fecha LIKE ?", mes+"%")
	}
	var ventas []model.VentaDiaria
	err := q.Order("fecha DESC").Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaDiariaRepo) ReplaceAllTx(tx *gorm.DB, ventas []model.VentaDiaria) error {
	return reemplazarTodo(tx, ventas)
}

func (r *ventaDiariaRepo) DB() *gorm.DB { return r.db }
