package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dxy/internal/calculo"
	"dxy/internal/dto"
	"dxy/internal/repository"
	"dxy/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxVentasPrompt bounds how many recent sales are pasted into a prompt.
const maxVentasPrompt = 200

// Transcriptor turns audio into text. *infra.AsistenteClient satisfies it.
type Transcriptor interface {
	Transcribir(ctx context.Context, audio []byte, mime string) (string, error)
}

type AsistenteService interface {
	// SolicitarConsejo queues an advice request and returns its pending state.
	SolicitarConsejo(ctx context.Context, req dto.ConsejoRequest) (*dto.ConsejoResponse, error)
	ObtenerConsejo(ctx context.Context, id string) (*dto.ConsejoResponse, error)
	Transcribir(ctx context.Context, audio []byte, mime string) (*dto.TranscripcionResponse, error)
}

type asistenteService struct {
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaDiariaRepository
	cola         worker.Encolador
	store        worker.ConsejoStore
	transcriptor Transcriptor
}

func NewAsistenteService(
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaDiariaRepository,
	cola worker.Encolador,
	store worker.ConsejoStore,
	transcriptor Transcriptor,
) AsistenteService {
	return &asistenteService{
		productoRepo: productoRepo,
		ventaRepo:    ventaRepo,
		cola:         cola,
		store:        store,
		transcriptor: transcriptor,
	}
}

func (s *asistenteService) SolicitarConsejo(ctx context.Context, req dto.ConsejoRequest) (*dto.ConsejoResponse, error) {
	if s.cola == nil || s.store == nil {
		return nil, ErrAsistente
	}

	var (
		prompt string
		err    error
	)
	switch req.Tipo {
	case "ventas":
		prompt, err = s.promptVentas(ctx, req.Consulta)
	default:
		prompt, err = s.promptInventario(ctx)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.store.Guardar(ctx, worker.ResultadoConsejo{ID: id, Estado: worker.ConsejoPendiente}); err != nil {
		return nil, err
	}
	if err := s.cola.EnqueueConsejo(ctx, worker.ConsejoPayload{ID: id, Prompt: prompt}); err != nil {
		return nil, fmt.Errorf("error al encolar consejo: %w", err)
	}
	log.Info().Str("consejo_id", id).Str("tipo", req.Tipo).Msg("consejo solicitado")
	return &dto.ConsejoResponse{ID: id, Estado: worker.ConsejoPendiente}, nil
}

func (s *asistenteService) ObtenerConsejo(ctx context.Context, id string) (*dto.ConsejoResponse, error) {
	if s.store == nil {
		return nil, ErrAsistente
	}
	r, err := s.store.Obtener(ctx, id)
	if errors.Is(err, worker.ErrConsejoNoEncontrado) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &dto.ConsejoResponse{ID: r.ID, Estado: r.Estado, Texto: r.Texto, Error: r.Error}, nil
}

func (s *asistenteService) Transcribir(ctx context.Context, audio []byte, mime string) (*dto.TranscripcionResponse, error) {
	if s.transcriptor == nil {
		return nil, ErrAsistente
	}
	texto, err := s.transcriptor.Transcribir(ctx, audio, mime)
	if err != nil {
		log.Error().Err(err).Msg("transcribir: fallo del asistente")
		return nil, fmt.Errorf("%w: %w", ErrAsistente, err)
	}
	return &dto.TranscripcionResponse{Texto: strings.TrimSpace(texto)}, nil
}

// ── Prompts ───────────────────────────────────────────────────────────────────

func (s *asistenteService) promptInventario(ctx context.Context) (string, error) {
	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Sos un experto en gestión de tiendas de suplementos deportivos. ")
	b.WriteString("Analizá este inventario (producto, stock actual, stock mínimo, ganancia neta por unidad en pesos) ")
	b.WriteString("y dame 3 consejos breves y accionables para mejorar la rentabilidad o la gestión del stock. ")
	b.WriteString("Respondé en español, con viñetas.\n\n")
	for _, p := range productos {
		m := calculo.CalcularMetricas(p)
		fmt.Fprintf(&b, "- %s: stock %d (mín %d), ganancia %s\n", p.NombreCompleto(), p.StockActual, p.StockMinimo, m.GananciaNeta.StringFixed(2))
	}
	return b.String(), nil
}

func (s *asistenteService) promptVentas(ctx context.Context, consulta string) (string, error) {
	ventas, err := s.ventaRepo.ListByMes(ctx, "")
	if err != nil {
		return "", err
	}
	if len(ventas) > maxVentasPrompt {
		ventas = ventas[:maxVentasPrompt]
	}
	var b strings.Builder
	b.WriteString("Sos un analista de ventas de una tienda de suplementos deportivos. ")
	b.WriteString("Con el registro de ventas que sigue (fecha, producto, canal, método de pago, monto), ")
	b.WriteString("respondé la consulta del dueño de forma concreta y en español.\n\n")
	fmt.Fprintf(&b, "Consulta: %s\n\nVentas:\n", strings.TrimSpace(consulta))
	for _, v := range ventas {
		fmt.Fprintf(&b, "- %s | %s | %s | %s | %s\n", v.Fecha, v.NombreProducto, v.Canal, v.MetodoPago, v.MontoTotal.StringFixed(2))
	}
	return b.String(), nil
}
