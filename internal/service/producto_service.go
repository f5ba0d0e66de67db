package service

import (
	"context"
	"fmt"
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

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
	HistorialCostos(ctx context.Context, id uuid.UUID) ([]dto.HistorialCostoResponse, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	movRepo   repository.MovimientoStockRepository
	histRepo  repository.HistorialCostoRepository
	registros registroStock
}

func NewProductoService(
	repo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	histRepo repository.HistorialCostoRepository,
) ProductoService {
	return &productoService{
		repo:      repo,
		movRepo:   movRepo,
		histRepo:  histRepo,
		registros: registroStock{productos: repo, movimientos: movRepo, historial: histRepo},
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:            strings.TrimSpace(req.Nombre),
		Marca:             strings.TrimSpace(req.Marca),
		CostoProveedor:    req.CostoProveedor,
		CostoFlete:        req.CostoFlete,
		MarkupPct:         req.MarkupPct,
		RecargoTarjetaPct: req.RecargoTarjetaPct,
		StockActual:       req.StockActual,
		StockMinimo:       req.StockMinimo,
		Sabores:           limpiarSabores(req.Sabores),
		UnidadesPorCaja:   req.UnidadesPorCaja,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error al crear producto: %w", err)
	}
	log.Info().Str("producto_id", p.ID.String()).Str("nombre", p.Nombre).Msg("producto creado")
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		r := productoToResponse(&productos[i])
		if filter.Estado != "" && !strings.EqualFold(string(r.Metricas.Estado), filter.Estado) {
			continue
		}
		data = append(data, *r)
	}
	return &dto.ProductoListResponse{Data: data, Total: len(data)}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	var actualizado *model.Producto
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return notFound(err)
		}
		antes := *p

		if req.Nombre != nil {
			p.Nombre = strings.TrimSpace(*req.Nombre)
		}
		if req.Marca != nil {
			p.Marca = strings.TrimSpace(*req.Marca)
		}
		if req.CostoProveedor != nil {
			p.CostoProveedor = *req.CostoProveedor
		}
		if req.CostoFlete != nil {
			p.CostoFlete = *req.CostoFlete
		}
		if req.MarkupPct != nil {
			p.MarkupPct = *req.MarkupPct
		}
		if req.RecargoTarjetaPct != nil {
			p.RecargoTarjetaPct = *req.RecargoTarjetaPct
		}
		if req.StockMinimo != nil {
			p.StockMinimo = *req.StockMinimo
		}
		if req.Sabores != nil {
			p.Sabores = limpiarSabores(req.Sabores)
		}
		if req.UnidadesPorCaja != nil {
			p.UnidadesPorCaja = *req.UnidadesPorCaja
		}

		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		if !antes.CostoProveedor.Equal(p.CostoProveedor) && s.histRepo != nil {
			h := &model.HistorialCosto{
				ProductoID:   p.ID,
				CostoAntes:   antes.CostoProveedor,
				CostoDespues: p.CostoProveedor,
				Motivo:       "manual",
			}
			if err := s.histRepo.CreateTx(tx, h); err != nil {
				return err
			}
		}
		actualizado = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productoToResponse(actualizado), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	log.Info().Str("producto_id", id.String()).Msg("producto eliminado")
	return nil
}

// AjustarStock applies the +/- adjustment. Decrements stop at zero.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	var resultado model.Producto
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return notFound(err)
		}
		antes := []model.Producto{*p}
		despues, ok := calculo.AplicarAjuste(antes, id, req.Delta)
		if !ok {
			return ErrNoEncontrado
		}
		motivo := req.Motivo
		if motivo == "" {
			motivo = "ajuste manual"
		}
		if _, err := s.registros.guardar(tx, antes, despues, model.MovimientoAjusteManual, motivo, nil); err != nil {
			return err
		}
		resultado = despues[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productoToResponse(&resultado), nil
}

func (s *productoService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	rf := repository.MovimientoStockFilter{Tipo: filter.Tipo, Page: filter.Page, Limit: filter.Limit}
	var err error
	if rf.ProductoID, err = uuidOpcional(filter.ProductoID, "producto_id"); err != nil {
		return nil, err
	}
	if rf.ReferenciaID, err = uuidOpcional(filter.ReferenciaID, "referencia_id"); err != nil {
		return nil, err
	}
	if filter.Desde != "" {
		d, err := time.ParseInLocation("2006-01-02", filter.Desde, time.Local)
		if err != nil {
			return nil, fmt.Errorf("desde inválido: %w", err)
		}
		rf.Desde = &d
	}
	if filter.Hasta != "" {
		h, err := time.ParseInLocation("2006-01-02", filter.Hasta, time.Local)
		if err != nil {
			return nil, fmt.Errorf("hasta inválido: %w", err)
		}
		h = h.AddDate(0, 0, 1)
		rf.Hasta = &h
	}

	movs, total, err := s.movRepo.List(ctx, rf)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoStockResponse, len(movs))
	for i, m := range movs {
		data[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenciaID != nil {
			data[i].ReferenciaID = m.ReferenciaID.String()
		}
	}
	return &dto.MovimientoStockListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func uuidOpcional(v, campo string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%s inválido: %w", campo, err)
	}
	return &id, nil
}

func (s *productoService) HistorialCostos(ctx context.Context, id uuid.UUID) ([]dto.HistorialCostoResponse, error) {
	rows, err := s.histRepo.ListByProducto(ctx, id, 50)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialCostoResponse, len(rows))
	for i, h := range rows {
		resp[i] = dto.HistorialCostoResponse{
			ID:           h.ID.String(),
			CostoAntes:   h.CostoAntes,
			CostoDespues: h.CostoDespues,
			Motivo:       h.Motivo,
			CreatedAt:    h.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	sabores := p.Sabores
	if sabores == nil {
		sabores = []string{}
	}
	return &dto.ProductoResponse{
		ID:                p.ID.String(),
		Nombre:            p.Nombre,
		Marca:             p.Marca,
		CostoProveedor:    p.CostoProveedor,
		CostoFlete:        p.CostoFlete,
		MarkupPct:         p.MarkupPct,
		RecargoTarjetaPct: p.RecargoTarjetaPct,
		StockActual:       p.StockActual,
		StockMinimo:       p.StockMinimo,
		Sabores:           sabores,
		UnidadesPorCaja:   p.UnidadesPorCaja,
		Metricas:          calculo.CalcularMetricas(*p),
	}
}

func limpiarSabores(sabores []string) []string {
	out := make([]string, 0, len(sabores))
	for _, s := range sabores {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
