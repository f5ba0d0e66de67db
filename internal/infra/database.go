package infra

import (
	"fmt"

	"dxy/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (expression indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations migrates every domain table. Integration tests call it
// directly against their throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.MovimientoStock{},
		&model.HistorialCosto{},
		&model.VentaDiaria{},
		&model.FacturaCompra{},
		&model.Partner{},
		&model.VentaPartner{},
		&model.Gasto{},
		&model.PedidoMayorista{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// handle on its own. Each statement uses IF NOT EXISTS so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// daily sales are matched to products by case-insensitive name
		`CREATE INDEX IF NOT EXISTS idx_productos_nombre_lower ON productos (LOWER(TRIM(nombre)))`,
		// monthly listings filter by the YYYY-MM prefix of the date
		`CREATE INDEX IF NOT EXISTS idx_ventas_diarias_fecha_pattern ON ventas_diarias (fecha text_pattern_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_ventas_partners_fecha_pattern ON ventas_partners (fecha text_pattern_ops)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
