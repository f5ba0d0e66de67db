package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueConsejos = "jobs:consejos"
	QueueEmail    = "jobs:email"

	// MaxIntentos is how many times a job runs before it lands in the DLQ.
	MaxIntentos = 3
)

var jobsProcesados = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "dxy_jobs_total",
	Help: "Async jobs processed, by queue and outcome",
}, []string{"queue", "resultado"})

// Collectors exposes the pool metrics so the caller can register them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{jobsProcesados}
}

// Job is the generic envelope for all async tasks.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Intentos int             `json:"intentos"`
}

// Handler processes the payload of one job. A returned error triggers a
// retry unless it is wrapped with Permanente.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Abandonable is implemented by handlers that need to record a final failure
// (for example so a poller stops waiting) before the job goes to the DLQ.
type Abandonable interface {
	Abandonar(ctx context.Context, raw json.RawMessage, causa error)
}

type errPermanente struct{ err error }

func (e errPermanente) Error() string { return e.err.Error() }
func (e errPermanente) Unwrap() error { return e.err }

// Permanente marks err as not worth retrying.
func Permanente(err error) error {
	if err == nil {
		return nil
	}
	return errPermanente{err: err}
}

func esPermanente(err error) bool {
	var p errPermanente
	return errors.As(err, &p)
}

// Encolador is what services need to push work. *Dispatcher satisfies it.
type Encolador interface {
	EnqueueConsejo(ctx context.Context, payload ConsejoPayload) error
	EnqueueEmail(ctx context.Context, payload EmailPayload) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) EnqueueConsejo(ctx context.Context, payload ConsejoPayload) error {
	return d.enqueue(ctx, QueueConsejos, "consejo", payload)
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{ID: uuid.NewString(), Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	dlq      *DLQ
	handlers map[string]Handler
}

// NewPool maps each queue to the handler that processes it.
func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	return &Pool{rdb: rdb, dlq: NewDLQ(rdb), handlers: handlers}
}

// Start launches numWorkers goroutines consuming every registered queue.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := make([]string, 0, len(p.handlers))
	for q := range p.handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i, queues)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", queues).Msg("worker pool started")
}

func (p *Pool) run(ctx context.Context, id int, queues []string) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			p.procesar(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) procesar(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.dlq.Enviar(ctx, queue, "desconocido", json.RawMessage(raw), "payload invalido", 0)
		return
	}
	h, ok := p.handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler for queue")
		return
	}

	job.Intentos++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		jobsProcesados.WithLabelValues(queue, "ok").Inc()
		log.Debug().Str("queue", queue).Str("job_id", job.ID).Msg("job processed")
		return
	}

	log.Warn().Err(err).Str("queue", queue).Str("job_id", job.ID).Int("intento", job.Intentos).Msg("job failed")
	if !esPermanente(err) && job.Intentos < MaxIntentos {
		jobsProcesados.WithLabelValues(queue, "reintento").Inc()
		if encoded, mErr := json.Marshal(job); mErr == nil {
			if pErr := p.rdb.LPush(ctx, queue, encoded).Err(); pErr == nil {
				return
			}
		}
	}

	jobsProcesados.WithLabelValues(queue, "dlq").Inc()
	if a, ok := h.(Abandonable); ok {
		a.Abandonar(ctx, job.Payload, err)
	}
	p.dlq.Enviar(ctx, queue, job.Type, job.Payload, err.Error(), job.Intentos)
}
