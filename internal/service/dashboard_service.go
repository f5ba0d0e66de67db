package service

import (
	"context"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Obtener(ctx context.Context) (*dto.DashboardResponse, error)
	// ReportarStockCritico logs the products that need reordering; run by cron.
	ReportarStockCritico(ctx context.Context) error
}

type dashboardService struct {
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaDiariaRepository
	reloj        Reloj
}

func NewDashboardService(productoRepo repository.ProductoRepository, ventaRepo repository.VentaDiariaRepository, reloj Reloj) DashboardService {
	return &dashboardService{productoRepo: productoRepo, ventaRepo: ventaRepo, reloj: reloj}
}

func (s *dashboardService) Obtener(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		productos []model.Producto
		ventas    []model.VentaDiaria
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		productos, err = s.productoRepo.List(gctx, dto.ProductoFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		// the last seven days can span two months, so load everything
		ventas, err = s.ventaRepo.ListByMes(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hoy := s.reloj()
	criticos := calculo.StockCritico(productos)
	stock := make([]dto.ProductoResponse, len(criticos))
	for i := range criticos {
		stock[i] = *productoToResponse(&criticos[i])
	}

	return &dto.DashboardResponse{
		Fecha:            hoy.Format("2006-01-02"),
		KPIs:             calculo.ResumenKPI(productos, ventas, hoy),
		UltimosSieteDias: calculo.UltimosSieteDias(ventas, hoy),
		TopProductos:     calculo.TopProductosMes(ventas, hoy.Format("2006-01")),
		StockCritico:     stock,
	}, nil
}

func (s *dashboardService) ReportarStockCritico(ctx context.Context) error {
	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return err
	}
	criticos := calculo.StockCritico(productos)
	for _, p := range criticos {
		log.Warn().
			Str("producto", p.NombreCompleto()).
			Int("stock", p.StockActual).
			Int("minimo", p.StockMinimo).
			Msg("stock crítico")
	}
	log.Info().Int("criticos", len(criticos)).Msg("revisión de stock completada")
	return nil
}
