package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Backup collection names, as they appear in /v1/respaldo/:coleccion.
const (
	ColeccionProductos      = "productos"
	ColeccionVentas         = "ventas"
	ColeccionCompras        = "compras"
	ColeccionPartners       = "partners"
	ColeccionVentasPartners = "ventas-partners"
	ColeccionGastos         = "gastos"
)

var Colecciones = []string{
	ColeccionProductos, ColeccionVentas, ColeccionCompras,
	ColeccionPartners, ColeccionVentasPartners, ColeccionGastos,
}

// RespaldoService exposes get-all / replace-all over each persisted
// collection as a JSON array.
type RespaldoService interface {
	Exportar(ctx context.Context, coleccion string) (interface{}, error)
	// Importar replaces the whole collection and returns how many elements
	// were kept. A payload that is not a JSON array empties the collection;
	// elements that fail validation are dropped.
	Importar(ctx context.Context, coleccion string, raw []byte) (int, error)
}

type respaldoService struct {
	db        *gorm.DB
	productos repository.ProductoRepository
	ventas    repository.VentaDiariaRepository
	compras   repository.FacturaCompraRepository
	partners  repository.PartnerRepository
	gastos    repository.GastoRepository
}

func NewRespaldoService(
	db *gorm.DB,
	productos repository.ProductoRepository,
	ventas repository.VentaDiariaRepository,
	compras repository.FacturaCompraRepository,
	partners repository.PartnerRepository,
	gastos repository.GastoRepository,
) RespaldoService {
	return &respaldoService{db: db, productos: productos, ventas: ventas, compras: compras, partners: partners, gastos: gastos}
}

func (s *respaldoService) Exportar(ctx context.Context, coleccion string) (interface{}, error) {
	switch coleccion {
	case ColeccionProductos:
		return s.productos.List(ctx, dto.ProductoFilter{})
	case ColeccionVentas:
		return s.ventas.ListByMes(ctx, "")
	case ColeccionCompras:
		return s.compras.List(ctx)
	case ColeccionPartners:
		return s.partners.List(ctx)
	case ColeccionVentasPartners:
		return s.partners.ListVentas(ctx, "")
	case ColeccionGastos:
		return s.gastos.List(ctx)
	}
	return nil, ErrNoEncontrado
}

func (s *respaldoService) Importar(ctx context.Context, coleccion string, raw []byte) (int, error) {
	var (
		n  int
		fn func(tx *gorm.DB) error
	)
	switch coleccion {
	case ColeccionProductos:
		items := decodificar(raw, productoValido, func(x *model.Producto) *uuid.UUID { return &x.ID })
		n, fn = len(items), func(tx *gorm.DB) error { return s.productos.ReplaceAllTx(tx, items) }
	case ColeccionVentas:
		items := decodificar(raw, ventaValida, func(x *model.VentaDiaria) *uuid.UUID { return &x.ID })
		n, fn = len(items), func(tx *gorm.DB) error { return s.ventas.ReplaceAllTx(tx, items) }
	case ColeccionCompras:
		items := decodificar(raw, facturaValida, func(x *model.FacturaCompra) *uuid.UUID { return &x.ID })
		n, fn = len(items), func(tx *gorm.DB) error { return s.compras.ReplaceAllTx(tx, items) }
	case ColeccionPartners:
		cupones := make(map[string]bool)
		items := decodificar(raw, func(p *model.Partner) bool {
			if !partnerValido(p) || cupones[p.CuponPartner] || cupones[p.CuponCliente] {
				return false
			}
			cupones[p.CuponPartner], cupones[p.CuponCliente] = true, true
			return true
		}, func(x *model.Partner) *uuid.UUID { return &x.ID })
		n, fn = len(items), func(tx *gorm.DB) error { return s.partners.ReplaceAllTx(tx, items) }
	case ColeccionVentasPartners:
		items := decodificar(raw, ventaPartnerValida, func(x *model.VentaPartner) *uuid.UUID { return &x.ID })
		n, fn = len(items), func(tx *gorm.DB) error { return s.partners.ReplaceAllVentasTx(tx, items) }
	case ColeccionGastos:
		items := decodificar(raw, gastoValido, func(x *model.Gasto) *uuid.UUID { return &x.ID })
		if len(items) == 0 {
			items = calculo.GastosFaltantes(nil)
		}
		n, fn = len(items), func(tx *gorm.DB) error { return s.gastos.ReplaceAllTx(tx, items) }
	default:
		return 0, ErrNoEncontrado
	}

	if err := runTx(ctx, s.db, fn); err != nil {
		return 0, err
	}
	log.Info().Str("coleccion", coleccion).Int("elementos", n).Msg("respaldo importado")
	return n, nil
}

// ── Decoding ──────────────────────────────────────────────────────────────────

// decodificar parses raw as a JSON array of T, keeping only the elements that
// decode and pass valido. Missing or repeated ids are replaced with fresh ones.
func decodificar[T any](raw []byte, valido func(*T) bool, id func(*T) *uuid.UUID) []T {
	var elementos []json.RawMessage
	if err := json.Unmarshal(raw, &elementos); err != nil {
		log.Warn().Err(err).Msg("respaldo: el contenido no es un arreglo, se descarta")
		return []T{}
	}
	out := make([]T, 0, len(elementos))
	vistos := idsVistos{}
	for i, e := range elementos {
		var item T
		if err := json.Unmarshal(e, &item); err != nil || !valido(&item) {
			log.Warn().Int("indice", i).Msg("respaldo: elemento inválido descartado")
			continue
		}
		vistos.unico(id(&item))
		out = append(out, item)
	}
	return out
}

// idsVistos resets an id that was already used in the same payload.
type idsVistos map[uuid.UUID]bool

func (v idsVistos) unico(id *uuid.UUID) {
	if *id != uuid.Nil && v[*id] {
		*id = uuid.Nil
	}
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	v[*id] = true
}

func productoValido(p *model.Producto) bool {
	p.Nombre = strings.TrimSpace(p.Nombre)
	if p.Nombre == "" || p.CostoProveedor.IsNegative() || p.CostoFlete.IsNegative() || p.MarkupPct.IsNegative() {
		return false
	}
	if p.StockActual < 0 {
		p.StockActual = 0
	}
	if p.StockMinimo < 0 {
		p.StockMinimo = 0
	}
	if p.UnidadesPorCaja < 1 {
		p.UnidadesPorCaja = 1
	}
	p.Sabores = limpiarSabores(p.Sabores)
	return true
}

func ventaValida(v *model.VentaDiaria) bool {
	if !fechaValida(v.Fecha, "2006-01-02") || strings.TrimSpace(v.NombreProducto) == "" || v.MontoTotal.IsNegative() {
		return false
	}
	if v.Canal == "" {
		v.Canal = model.CanalFisica
	}
	if v.MetodoPago == "" {
		v.MetodoPago = model.PagoEfectivo
	}
	if v.MontoPagado.IsNegative() {
		v.MontoPagado = v.MontoTotal
	}
	return true
}

func facturaValida(f *model.FacturaCompra) bool {
	return fechaValida(f.Fecha, "2006-01") && strings.TrimSpace(f.Proveedor) != "" &&
		!f.MontoMercaderia.IsNegative() && !f.CostoEnvio.IsNegative()
}

func partnerValido(p *model.Partner) bool {
	p.Nombre = strings.TrimSpace(p.Nombre)
	if p.Nombre == "" {
		return false
	}
	if p.CuponPartner == "" || p.CuponCliente == "" {
		p.CuponPartner, p.CuponCliente = calculo.CuponesPartner(p.Nombre)
	}
	return true
}

func ventaPartnerValida(v *model.VentaPartner) bool {
	if v.PartnerID == uuid.Nil || !fechaValida(v.Fecha, "2006-01-02") || v.Monto.IsNegative() {
		return false
	}
	return v.CuponUsado == model.CuponTrainer || v.CuponUsado == model.CuponCliente
}

func fechaValida(fecha, layout string) bool {
	_, err := time.Parse(layout, fecha)
	return err == nil
}

func gastoValido(g *model.Gasto) bool {
	g.Categoria = strings.TrimSpace(g.Categoria)
	return g.Categoria != "" && !g.Monto.IsNegative() && fechaValida(g.Fecha, "2006-01")
}
