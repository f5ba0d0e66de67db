package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"
	"dxy/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errStub = errors.New("stub: fallo forzado")

// fijo is a clock pinned to 2026-03-18.
func fijo() time.Time { return time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC) }

// ── In-memory ProductoRepository stub ────────────────────────────────────────
// Products are kept in catalog order and handed out as copies, like rows
// read from the database.

type stubProductoRepo struct {
	productos []model.Producto
}

func newStubProductoRepo(productos ...model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.productos = append(r.productos, p)
	}
	return r
}

func (r *stubProductoRepo) indice(id uuid.UUID) int {
	for i := range r.productos {
		if r.productos[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *stubProductoRepo) get(id uuid.UUID) model.Producto {
	return r.productos[r.indice(id)]
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos = append(r.productos, *p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	i := r.indice(id)
	if i < 0 {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.productos[i]
	return &p, nil
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	q := strings.ToLower(filter.Q)
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		if q != "" && !strings.Contains(strings.ToLower(p.Nombre+" "+p.Marca), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	return r.UpdateTx(nil, p)
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	i := r.indice(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.productos = append(r.productos[:i], r.productos[i+1:]...)
	return nil
}

func (r *stubProductoRepo) ListTx(_ *gorm.DB) ([]model.Producto, error) {
	return append([]model.Producto(nil), r.productos...), nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

// ActualizarStockTx only touches stock and cost, like the column-limited
// UPDATE of the real repository.
func (r *stubProductoRepo) ActualizarStockTx(_ *gorm.DB, p *model.Producto) error {
	i := r.indice(p.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.productos[i].StockActual = p.StockActual
	r.productos[i].CostoProveedor = p.CostoProveedor
	return nil
}

func (r *stubProductoRepo) UpdateTx(_ *gorm.DB, p *model.Producto) error {
	i := r.indice(p.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.productos[i] = *p
	return nil
}

func (r *stubProductoRepo) ReplaceAllTx(_ *gorm.DB, productos []model.Producto) error {
	r.productos = append([]model.Producto(nil), productos...)
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── Audit stubs ───────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	m.ID = uuid.New()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, f repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if f.ProductoID != nil && m.ProductoID != *f.ProductoID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

type stubHistorialRepo struct {
	filas []model.HistorialCosto
}

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialCosto) error {
	h.ID = uuid.New()
	r.filas = append(r.filas, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, id uuid.UUID, _ int) ([]model.HistorialCosto, error) {
	var out []model.HistorialCosto
	for _, h := range r.filas {
		if h.ProductoID == id {
			out = append(out, h)
		}
	}
	return out, nil
}

// ── VentaDiariaRepository stub ────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas []model.VentaDiaria
	falla  bool
}

func (r *stubVentaRepo) CreateBatchTx(_ *gorm.DB, ventas []model.VentaDiaria) error {
	if r.falla {
		return errStub
	}
	for i := range ventas {
		ventas[i].ID = uuid.New()
	}
	r.ventas = append(r.ventas, ventas...)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.VentaDiaria, error) {
	for _, v := range r.ventas {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) Update(_ context.Context, v *model.VentaDiaria) error {
	for i := range r.ventas {
		if r.ventas[i].ID == v.ID {
			r.ventas[i] = *v
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			r.ventas = append(r.ventas[:i], r.ventas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) ListByMes(_ context.Context, mes string) ([]model.VentaDiaria, error) {
	var out []model.VentaDiaria
	for _, v := range r.ventas {
		if strings.HasPrefix(v.Fecha, mes) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ReplaceAllTx(_ *gorm.DB, ventas []model.VentaDiaria) error {
	r.ventas = append([]model.VentaDiaria(nil), ventas...)
	return nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── FacturaCompra / PedidoMayorista / Gasto stubs ─────────────────────────────

type stubFacturaRepo struct {
	facturas []model.FacturaCompra
}

func (r *stubFacturaRepo) CreateTx(_ *gorm.DB, f *model.FacturaCompra) error {
	r.facturas = append(r.facturas, *f)
	return nil
}

func (r *stubFacturaRepo) List(_ context.Context) ([]model.FacturaCompra, error) {
	return r.facturas, nil
}

func (r *stubFacturaRepo) ReplaceAllTx(_ *gorm.DB, facturas []model.FacturaCompra) error {
	r.facturas = facturas
	return nil
}

type stubPedidoRepo struct {
	pedidos []model.PedidoMayorista
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.PedidoMayorista) error {
	r.pedidos = append(r.pedidos, *p)
	return nil
}

func (r *stubPedidoRepo) ListRecientes(_ context.Context, _ int) ([]model.PedidoMayorista, error) {
	return r.pedidos, nil
}

type stubGastoRepo struct {
	gastos []model.Gasto
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	g.ID = uuid.New()
	r.gastos = append(r.gastos, *g)
	return nil
}

func (r *stubGastoRepo) CreateBatch(ctx context.Context, gastos []model.Gasto) error {
	for i := range gastos {
		if err := r.Create(ctx, &gastos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	for _, g := range r.gastos {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubGastoRepo) List(_ context.Context) ([]model.Gasto, error) {
	return append([]model.Gasto(nil), r.gastos...), nil
}

func (r *stubGastoRepo) Update(_ context.Context, g *model.Gasto) error {
	for i := range r.gastos {
		if r.gastos[i].ID == g.ID {
			r.gastos[i] = *g
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.gastos {
		if r.gastos[i].ID == id {
			r.gastos = append(r.gastos[:i], r.gastos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubGastoRepo) ReplaceAllTx(_ *gorm.DB, gastos []model.Gasto) error {
	r.gastos = gastos
	return nil
}

// ── PartnerRepository stub ────────────────────────────────────────────────────

type stubPartnerRepo struct {
	partners []model.Partner
	ventas   []model.VentaPartner
}

func (r *stubPartnerRepo) Create(_ context.Context, p *model.Partner) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.partners = append(r.partners, *p)
	return nil
}

func (r *stubPartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Partner, error) {
	for _, p := range r.partners {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPartnerRepo) List(_ context.Context) ([]model.Partner, error) {
	return append([]model.Partner(nil), r.partners...), nil
}

func (r *stubPartnerRepo) Update(_ context.Context, p *model.Partner) error {
	for i := range r.partners {
		if r.partners[i].ID == p.ID {
			r.partners[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPartnerRepo) ExisteCupon(_ context.Context, code string) (bool, error) {
	for _, p := range r.partners {
		if p.CuponPartner == code || p.CuponCliente == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPartnerRepo) CreateVenta(_ context.Context, v *model.VentaPartner) error {
	v.ID = uuid.New()
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *stubPartnerRepo) ListVentas(_ context.Context, mes string) ([]model.VentaPartner, error) {
	var out []model.VentaPartner
	for _, v := range r.ventas {
		if strings.HasPrefix(v.Fecha, mes) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubPartnerRepo) ReplaceAllTx(_ *gorm.DB, partners []model.Partner) error {
	r.partners = partners
	return nil
}

func (r *stubPartnerRepo) ReplaceAllVentasTx(_ *gorm.DB, ventas []model.VentaPartner) error {
	r.ventas = ventas
	return nil
}

// ── Worker stubs ──────────────────────────────────────────────────────────────

type stubCola struct {
	consejos []worker.ConsejoPayload
	emails   []worker.EmailPayload
}

func (c *stubCola) EnqueueConsejo(_ context.Context, p worker.ConsejoPayload) error {
	c.consejos = append(c.consejos, p)
	return nil
}

func (c *stubCola) EnqueueEmail(_ context.Context, p worker.EmailPayload) error {
	c.emails = append(c.emails, p)
	return nil
}

type stubConsejoStore struct {
	resultados map[string]worker.ResultadoConsejo
}

func newStubConsejoStore() *stubConsejoStore {
	return &stubConsejoStore{resultados: make(map[string]worker.ResultadoConsejo)}
}

func (s *stubConsejoStore) Guardar(_ context.Context, r worker.ResultadoConsejo) error {
	s.resultados[r.ID] = r
	return nil
}

func (s *stubConsejoStore) Obtener(_ context.Context, id string) (*worker.ResultadoConsejo, error) {
	r, ok := s.resultados[id]
	if !ok {
		return nil, worker.ErrConsejoNoEncontrado
	}
	return &r, nil
}
