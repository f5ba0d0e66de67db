package service

import (
	"context"
	"errors"
	"time"

	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors that handlers map to HTTP status codes.
var (
	ErrNoEncontrado     = errors.New("registro no encontrado")
	ErrSinCoincidencias = errors.New("no se encontraron coincidencias")
	ErrAsistente        = errors.New("el asistente no está disponible")
	ErrDuplicado        = errors.New("registro duplicado")
)

// Reloj returns the current time in the store's time zone. Services take it
// as a dependency so "today" and "this month" are deterministic in tests.
type Reloj func() time.Time

func NuevoReloj(zona *time.Location) Reloj {
	if zona == nil {
		zona = time.Local
	}
	return func() time.Time { return time.Now().In(zona) }
}

func (r Reloj) hoy() string { return r().Format("2006-01-02") }
func (r Reloj) mes() string { return r().Format("2006-01") }

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound translates gorm's sentinel into the service one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	return err
}

// ── Stock persistence ─────────────────────────────────────────────────────────

// registroStock persists the result of a calculo stock transform: every
// product whose stock or cost changed is saved together with its audit rows.
// The antes slice must come from a locking read in the same tx.
type registroStock struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
	historial   repository.HistorialCostoRepository
}

// guardar compares antes and despues position by position (the transforms
// keep order) and returns how many products changed.
func (r registroStock) guardar(tx *gorm.DB, antes, despues []model.Producto, tipo, motivo string, ref *uuid.UUID) (int, error) {
	cambiados := 0
	for i := range despues {
		a, d := antes[i], despues[i]
		cambioStock := a.StockActual != d.StockActual
		cambioCosto := !a.CostoProveedor.Equal(d.CostoProveedor)
		if !cambioStock && !cambioCosto {
			continue
		}
		if err := r.productos.ActualizarStockTx(tx, &despues[i]); err != nil {
			return cambiados, err
		}
		if cambioStock && r.movimientos != nil {
			mov := &model.MovimientoStock{
				ProductoID:    d.ID,
				Tipo:          tipo,
				Cantidad:      d.StockActual - a.StockActual,
				StockAnterior: a.StockActual,
				StockNuevo:    d.StockActual,
				Motivo:        motivo,
				ReferenciaID:  ref,
			}
			if err := r.movimientos.CreateTx(tx, mov); err != nil {
				return cambiados, err
			}
		}
		if cambioCosto && r.historial != nil {
			h := &model.HistorialCosto{
				ProductoID:   d.ID,
				CostoAntes:   a.CostoProveedor,
				CostoDespues: d.CostoProveedor,
				Motivo:       origenCosto(tipo),
				ReferenciaID: ref,
			}
			if err := r.historial.CreateTx(tx, h); err != nil {
				return cambiados, err
			}
		}
		cambiados++
	}
	return cambiados, nil
}

func origenCosto(tipoMovimiento string) string {
	if tipoMovimiento == model.MovimientoCompra {
		return "compra"
	}
	return "manual"
}
