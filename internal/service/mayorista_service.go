package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const marcaPorDefecto = "Sin Marca"

type MayoristaService interface {
	Finalizar(ctx context.Context, req dto.FinalizarPedidoRequest) (*dto.PedidoMayoristaResponse, error)
	Interpretar(ctx context.Context, req dto.InterpretarPedidoRequest) (*dto.InterpretarPedidoResponse, error)
	Catalogo(ctx context.Context) ([]dto.MarcaCatalogo, error)
	ListarPedidos(ctx context.Context) ([]dto.PedidoMayoristaResponse, error)
}

type mayoristaService struct {
	repo         repository.PedidoMayoristaRepository
	productoRepo repository.ProductoRepository
	registros    registroStock
}

func NewMayoristaService(
	repo repository.PedidoMayoristaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
) MayoristaService {
	return &mayoristaService{
		repo:         repo,
		productoRepo: productoRepo,
		registros:    registroStock{productos: productoRepo, movimientos: movRepo},
	}
}

// ── Finalizar ─────────────────────────────────────────────────────────────────
// Prices the cart at the wholesale price, applies the order stock transform
// and stores a snapshot of the order, all in one transaction.

func (s *mayoristaService) Finalizar(ctx context.Context, req dto.FinalizarPedidoRequest) (*dto.PedidoMayoristaResponse, error) {
	lineas := make([]calculo.LineaPedido, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		lineas = append(lineas, calculo.LineaPedido{ProductoID: pid, Cantidad: it.Cantidad})
	}

	var (
		pedido   model.PedidoMayorista
		carrito  []calculo.LineaCarrito
		agotados []string
		omitidas []string
	)
	err := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		antes, err := s.productoRepo.ListTx(tx)
		if err != nil {
			return err
		}
		porID := make(map[uuid.UUID]model.Producto, len(antes))
		for _, p := range antes {
			porID[p.ID] = p
		}
		for _, l := range lineas {
			if p, ok := porID[l.ProductoID]; ok {
				carrito = calculo.AgregarAlCarrito(carrito, p, l.Cantidad)
			}
		}
		if len(carrito) == 0 {
			return fmt.Errorf("%w: ningún producto del pedido existe en el catálogo", ErrSinCoincidencias)
		}

		pedido = model.PedidoMayorista{
			ID:               uuid.New(),
			ClienteNombre:    strings.TrimSpace(req.Cliente.Nombre),
			ClienteLocalidad: strings.TrimSpace(req.Cliente.Localidad),
			ClienteTelefono:  strings.TrimSpace(req.Cliente.Telefono),
			Items:            lineasSnapshot(carrito),
			Total:            calculo.TotalCarrito(carrito),
		}

		despues, res := calculo.AplicarPedido(antes, lineas)
		motivo := "pedido mayorista " + pedido.ClienteNombre
		if _, err := s.registros.guardar(tx, antes, despues, model.MovimientoPedidoMayorista, motivo, &pedido.ID); err != nil {
			return err
		}
		agotados = res.Agotados
		for _, id := range res.Omitidas {
			omitidas = append(omitidas, id.String())
		}
		return s.repo.CreateTx(tx, &pedido)
	})
	if err != nil {
		return nil, err
	}

	if pedido.CreatedAt.IsZero() {
		pedido.CreatedAt = time.Now()
	}
	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("cliente", pedido.ClienteNombre).
		Str("total", pedido.Total.String()).
		Int("agotados", len(agotados)).
		Int("omitidas", len(omitidas)).
		Msg("pedido mayorista finalizado")

	resp := pedidoToResponse(&pedido)
	resp.Items = carrito
	resp.Agotados = agotados
	resp.Omitidas = omitidas
	return &resp, nil
}

// ── Interpretar ───────────────────────────────────────────────────────────────

// Interpretar turns pasted text (or one AGREGAR command) into cart lines
// priced at the wholesale price. Only in-stock products are considered.
func (s *mayoristaService) Interpretar(ctx context.Context, req dto.InterpretarPedidoRequest) (*dto.InterpretarPedidoResponse, error) {
	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return nil, err
	}

	var lineas []calculo.LineaPedido
	texto := strings.TrimSpace(req.Texto)
	if strings.HasPrefix(strings.ToUpper(texto), "AGREGAR:") {
		l, err := calculo.InterpretarComandoAgregar(texto, productos)
		if err != nil {
			if errors.Is(err, calculo.ErrProductoNoEncontrado) {
				return nil, fmt.Errorf("%w: %v", ErrSinCoincidencias, err)
			}
			return nil, err
		}
		lineas = []calculo.LineaPedido{l}
	} else {
		lineas = calculo.InterpretarPedido(texto, productos)
	}
	if len(lineas) == 0 {
		return nil, fmt.Errorf("%w: ningún producto con stock coincide con el pedido", ErrSinCoincidencias)
	}

	porID := make(map[uuid.UUID]model.Producto, len(productos))
	for _, p := range productos {
		porID[p.ID] = p
	}
	var carrito []calculo.LineaCarrito
	for _, l := range lineas {
		carrito = calculo.AgregarAlCarrito(carrito, porID[l.ProductoID], l.Cantidad)
	}
	return &dto.InterpretarPedidoResponse{Items: carrito, Total: calculo.TotalCarrito(carrito)}, nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// Catalogo groups in-stock products by brand, brands and products sorted by name.
func (s *mayoristaService) Catalogo(ctx context.Context) ([]dto.MarcaCatalogo, error) {
	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return nil, err
	}

	porMarca := make(map[string][]dto.ProductoCatalogo)
	for _, p := range productos {
		if p.StockActual <= 0 {
			continue
		}
		marca := strings.TrimSpace(p.Marca)
		if marca == "" {
			marca = marcaPorDefecto
		}
		sabores := p.Sabores
		if sabores == nil {
			sabores = []string{}
		}
		porMarca[marca] = append(porMarca[marca], dto.ProductoCatalogo{
			ID:              p.ID.String(),
			Nombre:          p.Nombre,
			Sabores:         sabores,
			Stock:           p.StockActual,
			PrecioMayorista: calculo.CalcularMetricas(p).PrecioMayorista,
		})
	}

	catalogo := make([]dto.MarcaCatalogo, 0, len(porMarca))
	for marca, prods := range porMarca {
		sort.SliceStable(prods, func(i, j int) bool {
			return strings.ToLower(prods[i].Nombre) < strings.ToLower(prods[j].Nombre)
		})
		catalogo = append(catalogo, dto.MarcaCatalogo{Marca: marca, Productos: prods})
	}
	sort.Slice(catalogo, func(i, j int) bool {
		return strings.ToLower(catalogo[i].Marca) < strings.ToLower(catalogo[j].Marca)
	})
	return catalogo, nil
}

func (s *mayoristaService) ListarPedidos(ctx context.Context) ([]dto.PedidoMayoristaResponse, error) {
	pedidos, err := s.repo.ListRecientes(ctx, 50)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PedidoMayoristaResponse, len(pedidos))
	for i := range pedidos {
		resp[i] = pedidoToResponse(&pedidos[i])
	}
	return resp, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func lineasSnapshot(carrito []calculo.LineaCarrito) []model.LineaPedidoMayorista {
	out := make([]model.LineaPedidoMayorista, len(carrito))
	for i, l := range carrito {
		out[i] = model.LineaPedidoMayorista{
			ProductoID: l.ProductoID,
			Nombre:     l.Nombre,
			Cantidad:   l.Cantidad,
			Precio:     l.Precio,
			Subtotal:   l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad))),
		}
	}
	return out
}

func pedidoToResponse(p *model.PedidoMayorista) dto.PedidoMayoristaResponse {
	items := make([]calculo.LineaCarrito, len(p.Items))
	for i, l := range p.Items {
		items[i] = calculo.LineaCarrito{ProductoID: l.ProductoID, Nombre: l.Nombre, Cantidad: l.Cantidad, Precio: l.Precio}
	}
	return dto.PedidoMayoristaResponse{
		ID: p.ID.String(),
		Cliente: dto.ClienteMayoristaRequest{
			Nombre:    p.ClienteNombre,
			Localidad: p.ClienteLocalidad,
			Telefono:  p.ClienteTelefono,
		},
		Items:     items,
		Total:     p.Total,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
