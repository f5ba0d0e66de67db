package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/infra"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const importacionTTL = 24 * time.Hour

// ExtractorVentas reads sales from a ledger photo. *infra.AsistenteClient
// satisfies it.
type ExtractorVentas interface {
	ExtraerVentas(ctx context.Context, imagen []byte, mime string) ([]infra.VentaExtraida, error)
}

type VentaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentasRequest) (*dto.RegistrarVentasResponse, error)
	ImportarImagen(ctx context.Context, imagen []byte, descontarStock bool) (*dto.RegistrarVentasResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.VentaRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	DistribucionPagos(ctx context.Context, filter dto.VentaFilter) (*dto.DistribucionPagosResponse, error)
}

type ventaService struct {
	repo           repository.VentaDiariaRepository
	productoRepo   repository.ProductoRepository
	registros      registroStock
	extractor      ExtractorVentas
	rdb            *redis.Client
	reloj          Reloj
	descuentoDesde string
}

// NewVentaService wires the daily sales service. descuentoDesde (YYYY-MM-DD)
// excludes older backfilled sales from stock deduction; empty disables it.
func NewVentaService(
	repo repository.VentaDiariaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	extractor ExtractorVentas,
	rdb *redis.Client,
	reloj Reloj,
	descuentoDesde string,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		registros:      registroStock{productos: productoRepo, movimientos: movRepo},
		extractor:      extractor,
		rdb:            rdb,
		reloj:          reloj,
		descuentoDesde: descuentoDesde,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// One transaction: insert every record, then (optionally) run the sales
// stock transform over the catalog and persist the products it changed.

func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentasRequest) (*dto.RegistrarVentasResponse, error) {
	ventas := make([]model.VentaDiaria, len(req.Ventas))
	for i, v := range req.Ventas {
		ventas[i] = ventaFromRequest(v)
	}

	resp := &dto.RegistrarVentasResponse{}
	err := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateBatchTx(tx, ventas); err != nil {
			return fmt.Errorf("error al registrar ventas: %w", err)
		}
		if !req.DescontarStock {
			return nil
		}

		aDescontar := s.filtrarPorCorte(ventas)
		if len(aDescontar) == 0 {
			return nil
		}
		antes, err := s.productoRepo.ListTx(tx)
		if err != nil {
			return err
		}
		despues, res := calculo.AplicarVentas(antes, aDescontar)
		if _, err := s.registros.guardar(tx, antes, despues, model.MovimientoVenta, "venta diaria", nil); err != nil {
			return err
		}
		resp.StockDescontado = res.Descontadas
		resp.SinCoincidencia = res.SinCoincidencia
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Ventas = make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		resp.Ventas[i] = ventaToResponse(&ventas[i])
	}
	log.Info().
		Int("ventas", len(ventas)).
		Int("stock_descontado", resp.StockDescontado).
		Int("sin_coincidencia", len(resp.SinCoincidencia)).
		Msg("ventas registradas")
	return resp, nil
}

func (s *ventaService) filtrarPorCorte(ventas []model.VentaDiaria) []model.VentaDiaria {
	if s.descuentoDesde == "" {
		return ventas
	}
	out := make([]model.VentaDiaria, 0, len(ventas))
	for _, v := range ventas {
		// ISO dates compare correctly as strings
		if v.Fecha >= s.descuentoDesde {
			out = append(out, v)
		}
	}
	return out
}

// ── ImportarImagen ────────────────────────────────────────────────────────────

func (s *ventaService) ImportarImagen(ctx context.Context, imagen []byte, descontarStock bool) (*dto.RegistrarVentasResponse, error) {
	if s.extractor == nil {
		return nil, ErrAsistente
	}

	sum := sha256.Sum256(imagen)
	clave := "importacion:" + hex.EncodeToString(sum[:])
	if s.rdb != nil {
		nueva, err := s.rdb.SetNX(ctx, clave, s.reloj().Format(time.RFC3339), importacionTTL).Result()
		if err != nil {
			log.Warn().Err(err).Msg("importar_imagen: redis no disponible, se omite el control de duplicados")
		} else if !nueva {
			return nil, fmt.Errorf("%w: esta imagen ya fue importada en las últimas 24 horas", ErrDuplicado)
		}
	}
	liberar := func() {
		if s.rdb != nil {
			s.rdb.Del(context.WithoutCancel(ctx), clave)
		}
	}

	reducida, mime, err := infra.ReducirImagen(imagen, infra.LadoMaximoImagen)
	if err != nil {
		liberar()
		return nil, err
	}

	extraidas, err := s.extractor.ExtraerVentas(ctx, reducida, mime)
	if err != nil {
		liberar()
		log.Error().Err(err).Msg("importar_imagen: fallo del asistente")
		return nil, fmt.Errorf("%w: %w", ErrAsistente, err)
	}

	req := dto.RegistrarVentasRequest{DescontarStock: descontarStock}
	for _, e := range extraidas {
		if v, ok := s.ventaDesdeExtraida(e); ok {
			req.Ventas = append(req.Ventas, v)
		}
	}
	if len(req.Ventas) == 0 {
		liberar()
		return nil, fmt.Errorf("%w: no se reconocieron ventas en la imagen", ErrSinCoincidencias)
	}
	log.Info().Int("extraidas", len(extraidas)).Int("validas", len(req.Ventas)).Msg("importar_imagen: ventas reconocidas")

	resp, err := s.Registrar(ctx, req)
	if err != nil {
		liberar()
		return nil, err
	}
	return resp, nil
}

// ventaDesdeExtraida keeps only rows with a product name and a positive total.
// Unknown dates fall back to today; unknown methods and channels to the defaults.
func (s *ventaService) ventaDesdeExtraida(e infra.VentaExtraida) (dto.VentaRequest, bool) {
	nombre := strings.TrimSpace(e.NombreProducto)
	if nombre == "" || !e.MontoTotal.IsPositive() {
		return dto.VentaRequest{}, false
	}
	fecha := e.Fecha
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		fecha = s.reloj.hoy()
	}
	v := dto.VentaRequest{
		Fecha:          fecha,
		NombreProducto: nombre,
		Canal:          normalizar(e.Canal, []string{model.CanalFisica, model.CanalOnline}),
		MetodoPago:     normalizar(e.MetodoPago, model.MetodosPago),
		MontoTotal:     e.MontoTotal,
	}
	if e.MontoPagado != nil && !e.MontoPagado.IsNegative() {
		pagado := *e.MontoPagado
		v.MontoPagado = &pagado
	}
	return v, true
}

// ── Consultas / edición ───────────────────────────────────────────────────────

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	mes := filter.Mes
	if mes == "" {
		mes = s.reloj.mes()
	}
	ventas, err := s.repo.ListByMes(ctx, mes)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentaListResponse{
		Data:           make([]dto.VentaResponse, len(ventas)),
		Mes:            mes,
		Cobrado:        decimal.Zero,
		SaldoPendiente: decimal.Zero,
	}
	for i := range ventas {
		r := ventaToResponse(&ventas[i])
		resp.Data[i] = r
		resp.Cobrado = resp.Cobrado.Add(r.MontoPagado)
		// overpayments never offset other debts
		if r.Saldo.IsPositive() {
			resp.SaldoPendiente = resp.SaldoPendiente.Add(r.Saldo)
		}
	}
	return resp, nil
}

// Actualizar edits a record in place. Stock is never touched by edits.
func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.VentaRequest) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	nuevo := ventaFromRequest(req)
	nuevo.ID = v.ID
	nuevo.CreatedAt = v.CreatedAt
	if err := s.repo.Update(ctx, &nuevo); err != nil {
		return nil, err
	}
	r := ventaToResponse(&nuevo)
	return &r, nil
}

func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *ventaService) DistribucionPagos(ctx context.Context, filter dto.VentaFilter) (*dto.DistribucionPagosResponse, error) {
	mes := filter.Mes
	if mes == "" {
		mes = s.reloj.mes()
	}
	ventas, err := s.repo.ListByMes(ctx, mes)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, v := range ventas {
		total = total.Add(v.MontoPagado)
	}
	return &dto.DistribucionPagosResponse{Mes: mes, Total: total, Data: calculo.DistribucionPagos(ventas)}, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func ventaFromRequest(r dto.VentaRequest) model.VentaDiaria {
	canal := r.Canal
	if canal == "" {
		canal = model.CanalFisica
	}
	metodo := r.MetodoPago
	if metodo == "" {
		metodo = model.PagoEfectivo
	}
	pagado := r.MontoTotal
	if r.MontoPagado != nil {
		pagado = *r.MontoPagado
	}
	return model.VentaDiaria{
		Fecha:          r.Fecha,
		NombreProducto: strings.TrimSpace(r.NombreProducto),
		Canal:          canal,
		MetodoPago:     metodo,
		MontoTotal:     r.MontoTotal,
		MontoPagado:    pagado,
	}
}

func ventaToResponse(v *model.VentaDiaria) dto.VentaResponse {
	return dto.VentaResponse{
		ID:             v.ID.String(),
		Fecha:          v.Fecha,
		NombreProducto: v.NombreProducto,
		Canal:          v.Canal,
		MetodoPago:     v.MetodoPago,
		MontoTotal:     v.MontoTotal,
		MontoPagado:    v.MontoPagado,
		Saldo:          v.MontoTotal.Sub(v.MontoPagado),
	}
}

// normalizar drops values outside the known channels and payment methods so
// the defaults apply instead.
func normalizar(valor string, validos []string) string {
	for _, v := range validos {
		if strings.EqualFold(strings.TrimSpace(valor), v) {
			return v
		}
	}
	return ""
}
