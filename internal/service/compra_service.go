package service

import (
	"context"
	"fmt"
	"strings"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/infra"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InterpreteFacturas matches invoice text to catalog ids.
// *infra.AsistenteClient satisfies it.
type InterpreteFacturas interface {
	InterpretarFactura(ctx context.Context, texto string, productos []infra.ProductoReferencia) ([]infra.ItemFactura, error)
}

type CompraService interface {
	Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error)
	Listar(ctx context.Context) ([]dto.FacturaCompraResponse, error)
	ReporteMensual(ctx context.Context) (*dto.ReporteComprasResponse, error)
	Interpretar(ctx context.Context, req dto.InterpretarFacturaRequest) (*dto.InterpretarFacturaResponse, error)
}

type compraService struct {
	repo         repository.FacturaCompraRepository
	productoRepo repository.ProductoRepository
	registros    registroStock
	interprete   InterpreteFacturas
}

func NewCompraService(
	repo repository.FacturaCompraRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	histRepo repository.HistorialCostoRepository,
	interprete InterpreteFacturas,
) CompraService {
	return &compraService{
		repo:         repo,
		productoRepo: productoRepo,
		registros:    registroStock{productos: productoRepo, movimientos: movRepo, historial: histRepo},
		interprete:   interprete,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Stores the invoice header and applies its lines to stock (and, when asked,
// to supplier costs) in one transaction.

func (s *compraService) Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error) {
	lineas := make([]calculo.LineaCompra, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		lineas = append(lineas, calculo.LineaCompra{ProductoID: pid, Cantidad: it.Cantidad, CostoProveedor: it.CostoProveedor})
	}

	factura := model.FacturaCompra{
		ID:              uuid.New(),
		Fecha:           req.Fecha,
		Proveedor:       req.Proveedor,
		NumeroFactura:   strings.TrimSpace(req.NumeroFactura),
		MontoMercaderia: req.MontoMercaderia,
		CostoEnvio:      req.CostoEnvio,
		Notas:           strings.TrimSpace(req.Notas),
	}
	var res calculo.ResultadoCompra

	err := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if len(lineas) == 0 {
			return s.crearFactura(tx, &factura)
		}
		antes, err := s.productoRepo.ListTx(tx)
		if err != nil {
			return err
		}
		var despues []model.Producto
		despues, res = calculo.AplicarCompra(antes, lineas, req.ActualizarCostos)
		if res.Aplicadas == 0 {
			return fmt.Errorf("%w: ningún producto de la factura existe en el catálogo", ErrSinCoincidencias)
		}
		if err := s.crearFactura(tx, &factura); err != nil {
			return err
		}
		motivo := "compra " + factura.Proveedor
		if factura.NumeroFactura != "" {
			motivo += " #" + factura.NumeroFactura
		}
		_, err = s.registros.guardar(tx, antes, despues, model.MovimientoCompra, motivo, &factura.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	omitidas := make([]string, len(res.Omitidas))
	for i, id := range res.Omitidas {
		omitidas[i] = id.String()
	}
	log.Info().
		Str("factura_id", factura.ID.String()).
		Str("proveedor", factura.Proveedor).
		Int("lineas", res.Aplicadas).
		Int("costos_actualizados", res.CostosActualizados).
		Msg("compra registrada")

	return &dto.RegistrarCompraResponse{
		Factura:            facturaToResponse(&factura),
		LineasAplicadas:    res.Aplicadas,
		CostosActualizados: res.CostosActualizados,
		Omitidas:           omitidas,
	}, nil
}

func (s *compraService) crearFactura(tx *gorm.DB, f *model.FacturaCompra) error {
	if err := s.repo.CreateTx(tx, f); err != nil {
		return fmt.Errorf("error al registrar factura: %w", err)
	}
	return nil
}

func (s *compraService) Listar(ctx context.Context) ([]dto.FacturaCompraResponse, error) {
	facturas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FacturaCompraResponse, len(facturas))
	for i := range facturas {
		resp[i] = facturaToResponse(&facturas[i])
	}
	return resp, nil
}

func (s *compraService) ReporteMensual(ctx context.Context) (*dto.ReporteComprasResponse, error) {
	facturas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReporteComprasResponse{Data: calculo.ReporteComprasMensual(facturas)}, nil
}

// ── Interpretar ───────────────────────────────────────────────────────────────

// Interpretar sends the invoice text and the catalog to the assistant, then
// re-checks every returned id against the catalog. The result is a preview:
// nothing is persisted until Registrar is called with the confirmed lines.
func (s *compraService) Interpretar(ctx context.Context, req dto.InterpretarFacturaRequest) (*dto.InterpretarFacturaResponse, error) {
	if s.interprete == nil {
		return nil, ErrAsistente
	}
	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return nil, err
	}
	refs := make([]infra.ProductoReferencia, len(productos))
	porID := make(map[uuid.UUID]model.Producto, len(productos))
	for i, p := range productos {
		refs[i] = infra.ProductoReferencia{ID: p.ID.String(), Nombre: p.Nombre, Marca: p.Marca, Sabores: p.Sabores}
		porID[p.ID] = p
	}

	items, err := s.interprete.InterpretarFactura(ctx, req.Texto, refs)
	if err != nil {
		log.Error().Err(err).Msg("interpretar_factura: fallo del asistente")
		return nil, fmt.Errorf("%w: %w", ErrAsistente, err)
	}

	resp := &dto.InterpretarFacturaResponse{Items: []dto.LineaCompraRequest{}, Cambios: []dto.CambioCosto{}}
	for _, it := range items {
		pid, err := uuid.Parse(it.ProductoID)
		p, ok := porID[pid]
		if err != nil || !ok || it.Cantidad < 1 {
			resp.Omitidas++
			continue
		}
		linea := dto.LineaCompraRequest{ProductoID: p.ID.String(), Cantidad: it.Cantidad}
		nuevo := p.CostoProveedor
		if it.CostoProveedor != nil && it.CostoProveedor.IsPositive() {
			c := *it.CostoProveedor
			linea.CostoProveedor = &c
			nuevo = c
		}
		resp.Items = append(resp.Items, linea)
		resp.Cambios = append(resp.Cambios, dto.CambioCosto{
			ProductoID:  p.ID.String(),
			Nombre:      p.NombreCompleto(),
			Cantidad:    it.Cantidad,
			CostoActual: p.CostoProveedor,
			CostoNuevo:  nuevo,
			Cambia:      !nuevo.Equal(p.CostoProveedor),
		})
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: ninguna línea de la factura coincide con el catálogo", ErrSinCoincidencias)
	}
	return resp, nil
}

func facturaToResponse(f *model.FacturaCompra) dto.FacturaCompraResponse {
	return dto.FacturaCompraResponse{
		ID:              f.ID.String(),
		Fecha:           f.Fecha,
		Proveedor:       f.Proveedor,
		NumeroFactura:   f.NumeroFactura,
		MontoMercaderia: f.MontoMercaderia,
		CostoEnvio:      f.CostoEnvio,
		Total:           f.MontoMercaderia.Add(f.CostoEnvio),
		Notas:           f.Notas,
	}
}
