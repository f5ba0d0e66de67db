package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"dxy/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter per client IP ───────────────────────────────────────

type ventana struct {
	count int
	fin   time.Time
}

// Limiter counts requests per IP inside a fixed window.
type Limiter struct {
	limite  int
	ventana time.Duration
	mensaje string
	now     func() time.Time

	mu       sync.Mutex
	clientes map[string]*ventana
}

func NewLimiter(limite int, window time.Duration, mensaje string) *Limiter {
	return &Limiter{
		limite:   limite,
		ventana:  window,
		mensaje:  mensaje,
		now:      time.Now,
		clientes: make(map[string]*ventana),
	}
}

// permitir registers one hit for ip and reports whether it is within the
// limit, plus the end of the current window.
func (l *Limiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.clientes[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.ventana)}
		l.clientes[ip] = v
	}
	v.count++
	return v.count <= l.limite, v.fin
}

func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.permitir(c.ClientIP())
		if !ok {
			segundos := int(time.Until(fin).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(segundos))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// purgar drops expired windows and returns how many were removed.
func (l *Limiter) purgar() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for ip, v := range l.clientes {
		if now.After(v.fin) {
			delete(l.clientes, ip)
			n++
		}
	}
	return n
}

// Purgar removes expired entries every interval until ctx is done, so IPs
// that never come back do not accumulate.
func (l *Limiter) Purgar(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.purgar(); n > 0 {
				log.Debug().Int("purgadas", n).Msg("rate limiter: ventanas vencidas")
			}
		}
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() *Limiter {
	return NewLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")
}

// RateLimiter is the general API limiter, limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) *Limiter {
	return NewLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}
