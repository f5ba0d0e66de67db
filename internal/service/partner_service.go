package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"
	"dxy/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PartnerService interface {
	Crear(ctx context.Context, req dto.CrearPartnerRequest) (*dto.PartnerResponse, error)
	Listar(ctx context.Context) ([]dto.PartnerResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) (*dto.PartnerResponse, error)
	RegistrarVenta(ctx context.Context, req dto.VentaPartnerRequest) (*dto.VentaPartnerResponse, error)
	ListarVentas(ctx context.Context, filter dto.MesFilter) ([]dto.VentaPartnerResponse, error)
	Liquidacion(ctx context.Context, filter dto.MesFilter) (*dto.LiquidacionResponse, error)
	NotificarLiquidacion(ctx context.Context, filter dto.MesFilter) (*dto.NotificacionLiquidacionResponse, error)
	// NotificarMesAnterior is the scheduled form of NotificarLiquidacion.
	NotificarMesAnterior(ctx context.Context) error
}

type partnerService struct {
	repo  repository.PartnerRepository
	cola  worker.Encolador
	reloj Reloj
}

func NewPartnerService(repo repository.PartnerRepository, cola worker.Encolador, reloj Reloj) PartnerService {
	return &partnerService{repo: repo, cola: cola, reloj: reloj}
}

func (s *partnerService) Crear(ctx context.Context, req dto.CrearPartnerRequest) (*dto.PartnerResponse, error) {
	cuponPartner, cuponCliente := calculo.CuponesPartner(req.Nombre)
	for _, c := range []string{cuponPartner, cuponCliente} {
		existe, err := s.repo.ExisteCupon(ctx, c)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, fmt.Errorf("%w: ya existe un partner con el cupón %s", ErrDuplicado, c)
		}
	}

	p := &model.Partner{
		Nombre:       strings.TrimSpace(req.Nombre),
		CuponPartner: cuponPartner,
		CuponCliente: cuponCliente,
		Telefono:     strings.TrimSpace(req.Telefono),
		Email:        strings.TrimSpace(req.Email),
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error al crear partner: %w", err)
	}
	log.Info().Str("partner_id", p.ID.String()).Str("cupon", p.CuponPartner).Msg("partner creado")
	r := partnerToResponse(p)
	return &r, nil
}

func (s *partnerService) Listar(ctx context.Context) ([]dto.PartnerResponse, error) {
	partners, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PartnerResponse, len(partners))
	for i := range partners {
		resp[i] = partnerToResponse(&partners[i])
	}
	return resp, nil
}

// CambiarEstado activates or deactivates a partner. Partners are never
// deleted so past sales keep their owner.
func (s *partnerService) CambiarEstado(ctx context.Context, id uuid.UUID, activo bool) (*dto.PartnerResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	p.Activo = activo
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	r := partnerToResponse(p)
	return &r, nil
}

func (s *partnerService) RegistrarVenta(ctx context.Context, req dto.VentaPartnerRequest) (*dto.VentaPartnerResponse, error) {
	pid, err := uuid.Parse(req.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("partner_id inválido: %w", err)
	}
	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.Activo {
		return nil, errors.New("el partner está inactivo")
	}

	fecha := req.Fecha
	if fecha == "" {
		fecha = s.reloj.hoy()
	}
	v := &model.VentaPartner{
		PartnerID:       p.ID,
		NombreCliente:   strings.TrimSpace(req.NombreCliente),
		TelefonoCliente: strings.TrimSpace(req.TelefonoCliente),
		Fecha:           fecha,
		Monto:           req.Monto,
		NombreProducto:  strings.TrimSpace(req.NombreProducto),
		CuponUsado:      req.CuponUsado,
	}
	if err := s.repo.CreateVenta(ctx, v); err != nil {
		return nil, fmt.Errorf("error al registrar venta de partner: %w", err)
	}
	r := ventaPartnerToResponse(v)
	return &r, nil
}

func (s *partnerService) ListarVentas(ctx context.Context, filter dto.MesFilter) ([]dto.VentaPartnerResponse, error) {
	ventas, err := s.repo.ListVentas(ctx, s.mesOActual(filter.Mes))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaPartnerResponse, len(ventas))
	for i := range ventas {
		resp[i] = ventaPartnerToResponse(&ventas[i])
	}
	return resp, nil
}

func (s *partnerService) Liquidacion(ctx context.Context, filter dto.MesFilter) (*dto.LiquidacionResponse, error) {
	mes := s.mesOActual(filter.Mes)
	partners, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.repo.ListVentas(ctx, mes)
	if err != nil {
		return nil, err
	}
	liqs, totales := calculo.LiquidarMes(partners, ventas, mes)
	return &dto.LiquidacionResponse{Mes: mes, Partners: liqs, Totales: totales}, nil
}

// NotificarLiquidacion emails each partner with activity in the month their
// settlement. Partners without email are counted, not failed.
func (s *partnerService) NotificarLiquidacion(ctx context.Context, filter dto.MesFilter) (*dto.NotificacionLiquidacionResponse, error) {
	if s.cola == nil {
		return nil, errors.New("la cola de envíos no está disponible")
	}
	mes := s.mesOActual(filter.Mes)
	partners, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.repo.ListVentas(ctx, mes)
	if err != nil {
		return nil, err
	}
	emails := make(map[uuid.UUID]string, len(partners))
	for _, p := range partners {
		emails[p.ID] = p.Email
	}

	liqs, _ := calculo.LiquidarMes(partners, ventas, mes)
	resp := &dto.NotificacionLiquidacionResponse{Mes: mes}
	for _, l := range liqs {
		if l.TotalVentas == 0 {
			continue
		}
		email := emails[l.PartnerID]
		if email == "" {
			resp.SinEmail++
			continue
		}
		payload := worker.EmailPayload{
			Para:   email,
			Asunto: fmt.Sprintf("DXY - Tu liquidación de %s", mes),
			Cuerpo: cuerpoLiquidacion(l, mes),
		}
		if err := s.cola.EnqueueEmail(ctx, payload); err != nil {
			return nil, fmt.Errorf("error al encolar email: %w", err)
		}
		resp.Encolados++
	}
	log.Info().Str("mes", mes).Int("encolados", resp.Encolados).Int("sin_email", resp.SinEmail).Msg("liquidación notificada")
	return resp, nil
}

func (s *partnerService) NotificarMesAnterior(ctx context.Context) error {
	ahora := s.reloj()
	anterior := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location()).AddDate(0, -1, 0)
	_, err := s.NotificarLiquidacion(ctx, dto.MesFilter{Mes: anterior.Format("2006-01")})
	return err
}

func (s *partnerService) mesOActual(mes string) string {
	if mes == "" {
		return s.reloj.mes()
	}
	return mes
}

func cuerpoLiquidacion(l calculo.Liquidacion, mes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", l.Nombre)
	fmt.Fprintf(&b, "Este es el resumen de tu actividad como partner de DXY en %s:\n\n", mes)
	fmt.Fprintf(&b, "Clientes únicos: %d\n", l.ClientesUnicos)
	fmt.Fprintf(&b, "Ventas totales: %d ($%s)\n", l.TotalVentas, l.MontoTotal.StringFixed(2))
	fmt.Fprintf(&b, "Nivel de descuento alcanzado: %d%%\n", l.NivelDescuento)
	fmt.Fprintf(&b, "Compras propias: $%s\n", l.MontoPropio.StringFixed(2))
	fmt.Fprintf(&b, "Reintegro a tu favor: $%s\n\n", l.Reintegro.StringFixed(2))
	b.WriteString("¡Gracias por recomendarnos!\n")
	return b.String()
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func partnerToResponse(p *model.Partner) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		CuponPartner: p.CuponPartner,
		CuponCliente: p.CuponCliente,
		Telefono:     p.Telefono,
		Email:        p.Email,
		Activo:       p.Activo,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func ventaPartnerToResponse(v *model.VentaPartner) dto.VentaPartnerResponse {
	return dto.VentaPartnerResponse{
		ID:              v.ID.String(),
		PartnerID:       v.PartnerID.String(),
		NombreCliente:   v.NombreCliente,
		TelefonoCliente: v.TelefonoCliente,
		Fecha:           v.Fecha,
		Monto:           v.Monto,
		NombreProducto:  v.NombreProducto,
		CuponUsado:      v.CuponUsado,
	}
}
