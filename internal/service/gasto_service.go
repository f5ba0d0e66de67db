package service

import (
	"context"
	"strings"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type GastoService interface {
	// Listar returns every expense plus the summary, seeding the default
	// categories that are still missing.
	Listar(ctx context.Context) (*dto.GastosResponse, error)
	Crear(ctx context.Context, req dto.GastoRequest) (*dto.GastoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Resumen(ctx context.Context) (*calculo.ResumenGastos, error)
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

func (s *gastoService) Listar(ctx context.Context) (*dto.GastosResponse, error) {
	gastos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.GastoResponse, len(gastos))
	for i := range gastos {
		data[i] = gastoToResponse(&gastos[i])
	}
	return &dto.GastosResponse{Data: data, Resumen: calculo.ResumirGastos(gastos)}, nil
}

func (s *gastoService) Crear(ctx context.Context, req dto.GastoRequest) (*dto.GastoResponse, error) {
	g := &model.Gasto{Categoria: strings.TrimSpace(req.Categoria), Monto: req.Monto, Fecha: req.Fecha}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	r := gastoToResponse(g)
	return &r, nil
}

func (s *gastoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GastoRequest) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	g.Categoria = strings.TrimSpace(req.Categoria)
	g.Monto = req.Monto
	g.Fecha = req.Fecha
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	r := gastoToResponse(g)
	return &r, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return notFound(s.repo.Delete(ctx, id))
}

func (s *gastoService) Resumen(ctx context.Context) (*calculo.ResumenGastos, error) {
	gastos, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	r := calculo.ResumirGastos(gastos)
	return &r, nil
}

func (s *gastoService) cargar(ctx context.Context) ([]model.Gasto, error) {
	gastos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	faltantes := calculo.GastosFaltantes(gastos)
	if len(faltantes) == 0 {
		return gastos, nil
	}
	if err := s.repo.CreateBatch(ctx, faltantes); err != nil {
		return nil, err
	}
	log.Info().Int("categorias", len(faltantes)).Msg("categorías de gasto por defecto agregadas")
	return append(gastos, faltantes...), nil
}

func gastoToResponse(g *model.Gasto) dto.GastoResponse {
	return dto.GastoResponse{ID: g.ID.String(), Categoria: g.Categoria, Monto: g.Monto, Fecha: g.Fecha}
}
