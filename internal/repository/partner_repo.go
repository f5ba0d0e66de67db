package repository

import (
	"context"

	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(ctx context.Context, p *model.Partner) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error)
	List(ctx context.Context) ([]model.Partner, error)
	Update(ctx context.Context, p *model.Partner) error
	// ExisteCupon reports whether any partner already holds code, as either
	// of its two coupons.
	ExisteCupon(ctx context.Context, code string) (bool, error)

	CreateVenta(ctx context.Context, v *model.VentaPartner) error
	// ListVentas returns partner sales for mes (YYYY-MM); empty mes means all.
	ListVentas(ctx context.Context, mes string) ([]model.VentaPartner, error)

	ReplaceAllTx(tx *gorm.DB, partners []model.Partner) error
	ReplaceAllVentasTx(tx *gorm.DB, ventas []model.VentaPartner) error
}

type partnerRepo struct{ db *gorm.DB }

func NewPartnerRepository(db *gorm.DB) PartnerRepository { return &partnerRepo{db: db} }

func (r *partnerRepo) Create(ctx context.Context, p *model.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partnerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	var p model.Partner
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *partnerRepo) List(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) Update(ctx context.Context, p *model.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *partnerRepo) ExisteCupon(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Partner{}).
		Where("cupon_partner = ? OR cupon_cliente = ?", code, code).
		Count(&n).Error
	return n > 0, err
}

func (r *partnerRepo) CreateVenta(ctx context.Context, v *model.VentaPartner) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *partnerRepo) ListVentas(ctx context.Context, mes string) ([]model.VentaPartner, error) {
	q := r.db.WithContext(ctx).Model(&model.VentaPartner{})
	if mes != "" {
		q = q.Where("fecha LIKE ?", mes+"%")
	}
	var ventas []model.VentaPartner
	err := q.Order("fecha DESC").Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *partnerRepo) ReplaceAllTx(tx *gorm.DB, partners []model.Partner) error {
	return reemplazarTodo(tx, partners)
}

func (r *partnerRepo) ReplaceAllVentasTx(tx *gorm.DB, ventas []model.VentaPartner) error {
	return reemplazarTodo(tx, ventas)
}
