package handler

import (
	"context"
	"net/http"
	"time"

	"dxy/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// The assistant breaker and the dead-letter backlog are informative only.
func Health(db *gorm.DB, rdb *redis.Client, asistente func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		dlq := gin.H{}
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		} else {
			cola := worker.NewDLQ(rdb)
			for _, q := range []string{worker.QueueConsejos, worker.QueueEmail} {
				n, err := cola.Largo(ctx, q)
				if err != nil {
					continue
				}
				estado := gin.H{"pendientes": n}
				if ult, err := cola.Ultimas(ctx, q, 1); err == nil && len(ult) == 1 {
					estado["ultimo_error"] = ult[0].Reason
					estado["ultimo_fallo"] = ult[0].FailedAt
				}
				dlq[q] = estado
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
			"dlq":   dlq,
		}
		if asistente != nil {
			body["asistente"] = asistente()
		}
		c.JSON(status, body)
	}
}
