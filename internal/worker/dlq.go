package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix namespaces the dead-letter list of each queue: dlq:jobs:email.
const DLQPrefix = "dlq:"

// dlqMax caps every dead-letter list; older entries are trimmed.
const dlqMax = 500

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339
	Attempts      int             `json:"attempts"`
}

// DLQ keeps the jobs that exhausted their retries, newest first.
type DLQ struct {
	rdb *redis.Client
	now func() time.Time
}

func NewDLQ(rdb *redis.Client) *DLQ {
	return &DLQ{rdb: rdb, now: time.Now}
}

// Enviar stores a failed job. Failures to write are only logged: the job is
// already lost to the queue at this point.
func (d *DLQ) Enviar(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      d.now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	key := DLQPrefix + queue
	pipe := d.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, dlqMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to push")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// Largo returns how many jobs of queue are parked.
func (d *DLQ) Largo(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// Ultimas returns up to n of the most recent entries of queue. Entries that
// do not decode are skipped.
func (d *DLQ) Ultimas(ctx context.Context, queue string, n int64) ([]DLQEntry, error) {
	if n < 1 {
		return nil, nil
	}
	raws, err := d.rdb.LRange(ctx, DLQPrefix+queue, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DLQEntry, 0, len(raws))
	for _, raw := range raws {
		var e DLQEntry
		if json.Unmarshal([]byte(raw), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
