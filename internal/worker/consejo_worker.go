package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dxy/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Estados de un consejo solicitado al asistente.
const (
	ConsejoPendiente = "pendiente"
	ConsejoListo     = "listo"
	ConsejoError     = "fallido"
)

const (
	consejoKeyPrefix = "consejo:"
	consejoTTL       = time.Hour
)

// ErrConsejoNoEncontrado is returned for unknown or expired advice ids.
var ErrConsejoNoEncontrado = errors.New("consejo no encontrado o expirado")

// ConsejoPayload is the job envelope sent to QueueConsejos. The prompt is
// built by the service, so the worker never touches the database.
type ConsejoPayload struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// ResultadoConsejo is what pollers read back.
type ResultadoConsejo struct {
	ID     string `json:"id"`
	Estado string `json:"estado"`
	Texto  string `json:"texto,omitempty"`
	Error  string `json:"error,omitempty"`
}

type ConsejoStore interface {
	Guardar(ctx context.Context, r ResultadoConsejo) error
	Obtener(ctx context.Context, id string) (*ResultadoConsejo, error)
}

type redisConsejoStore struct{ rdb *redis.Client }

// NewConsejoStore keeps results under consejo:<id> for one hour.
func NewConsejoStore(rdb *redis.Client) ConsejoStore { return &redisConsejoStore{rdb: rdb} }

func (s *redisConsejoStore) Guardar(ctx context.Context, r ResultadoConsejo) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, consejoKeyPrefix+r.ID, data, consejoTTL).Err()
}

func (s *redisConsejoStore) Obtener(ctx context.Context, id string) (*ResultadoConsejo, error) {
	data, err := s.rdb.Get(ctx, consejoKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrConsejoNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	var r ResultadoConsejo
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Generador produces advice text. *infra.AsistenteClient satisfies it.
type Generador interface {
	Generar(ctx context.Context, prompt string) (string, error)
}

// ConsejoWorker asks the assistant for advice and stores the answer.
type ConsejoWorker struct {
	gen   Generador
	store ConsejoStore
}

func NewConsejoWorker(gen Generador, store ConsejoStore) *ConsejoWorker {
	return &ConsejoWorker{gen: gen, store: store}
}

func (w *ConsejoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p ConsejoPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Permanente(fmt.Errorf("consejo_worker: invalid payload: %w", err))
	}

	texto, err := w.gen.Generar(ctx, p.Prompt)
	if err != nil {
		if errors.Is(err, infra.ErrAsistenteRechazo) {
			return Permanente(err)
		}
		return err
	}

	if err := w.store.Guardar(ctx, ResultadoConsejo{ID: p.ID, Estado: ConsejoListo, Texto: texto}); err != nil {
		return err
	}
	log.Info().Str("consejo_id", p.ID).Int("chars", len(texto)).Msg("consejo_worker: consejo listo")
	return nil
}

// Abandonar records the failure so the poller gets an answer instead of
// waiting for the key to expire.
func (w *ConsejoWorker) Abandonar(ctx context.Context, raw json.RawMessage, causa error) {
	var p ConsejoPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
		return
	}
	r := ResultadoConsejo{ID: p.ID, Estado: ConsejoError, Error: "No se pudo generar el consejo, intentá más tarde"}
	if err := w.store.Guardar(ctx, r); err != nil {
		log.Error().Err(err).Str("consejo_id", p.ID).Msg("consejo_worker: no se pudo guardar el error")
	}
	log.Warn().Err(causa).Str("consejo_id", p.ID).Msg("consejo_worker: consejo abandonado")
}
