package repository

import (
	"context"
	"strings"

	"dxy/internal/dto"
	"dxy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// List returns products in catalog order (oldest first), optionally
	// filtered by a substring of name, brand or flavor.
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions, callers must pass the tx instance.
	// ListTx and FindByIDTx lock the rows they read until the tx ends.
	ListTx(tx *gorm.DB) ([]model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	UpdateTx(tx *gorm.DB, p *model.Producto) error
	// ActualizarStockTx writes only stock_actual and costo_proveedor.
	ActualizarStockTx(tx *gorm.DB, p *model.Producto) error
	ReplaceAllTx(tx *gorm.DB, productos []model.Producto) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if term := strings.ToLower(strings.TrimSpace(filter.Q)); term != "" {
		like := "%" + term + "%"
		// sabores is stored as a JSON array, so a LIKE over the text finds flavors too
		q = q.Where("LOWER(nombre) LIKE ? OR LOWER(marca) LIKE ? OR LOWER(sabores) LIKE ?", like, like, like)
	}

	var productos []model.Producto
	err := q.Order("created_at ASC").Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) ListTx(tx *gorm.DB) ([]model.Producto, error) {
	var productos []model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at ASC").Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) UpdateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Save(p).Error
}

func (r *productoRepo) ActualizarStockTx(tx *gorm.DB, p *model.Producto) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"stock_actual":    p.StockActual,
			"costo_proveedor": p.CostoProveedor,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) ReplaceAllTx(tx *gorm.DB, productos []model.Producto) error {
	return reemplazarTodo(tx, productos)
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
