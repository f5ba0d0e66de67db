package service

import (
	"context"
	"errors"
	"fmt"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/repository"

	"github.com/google/uuid"
)

type CalculadoraService interface {
	Combo(ctx context.Context, req dto.ComboRequest) (*calculo.Combo, error)
	Beneficio(req dto.BeneficioRequest) (*dto.BeneficioResponse, error)
	Perfiles() []calculo.PerfilBeneficio
}

type calculadoraService struct {
	productoRepo repository.ProductoRepository
}

func NewCalculadoraService(productoRepo repository.ProductoRepository) CalculadoraService {
	return &calculadoraService{productoRepo: productoRepo}
}

// Combo prices a bundle. A missing quantity counts as one unit.
func (s *calculadoraService) Combo(ctx context.Context, req dto.ComboRequest) (*calculo.Combo, error) {
	items := make([]calculo.ItemCombo, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, notFound(err)
		}
		cantidad := it.Cantidad
		if cantidad < 1 {
			cantidad = 1
		}
		items = append(items, calculo.ItemCombo{Producto: *p, Cantidad: cantidad})
	}

	combo, err := calculo.CotizarCombo(items)
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

func (s *calculadoraService) Beneficio(req dto.BeneficioRequest) (*dto.BeneficioResponse, error) {
	if !perfilExiste(req.Perfil) {
		return nil, errors.New("perfil de beneficio desconocido")
	}
	final, ahorro := calculo.PrecioConBeneficio(req.MontoBase, req.Perfil)
	return &dto.BeneficioResponse{MontoBase: req.MontoBase, Perfil: req.Perfil, PrecioFinal: final, Ahorro: ahorro}, nil
}

func (s *calculadoraService) Perfiles() []calculo.PerfilBeneficio {
	return calculo.PerfilesBeneficio
}

func perfilExiste(id string) bool {
	for _, p := range calculo.PerfilesBeneficio {
		if p.ID == id {
			return true
		}
	}
	return false
}

