package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// Tarea is a scheduled job body. Errors are logged, never retried: the next
// tick runs again.
type Tarea func(ctx context.Context) error

type CronConfig struct {
	Zona             *time.Location
	ExprLiquidacion  string // notify partners of last month's settlement
	ExprStockCritico string // log the products that need reordering
	Liquidacion      Tarea
	StockCritico     Tarea
}

// StartCron schedules the periodic tasks and returns the running scheduler;
// callers Stop it on shutdown.
func StartCron(ctx context.Context, cfg CronConfig) (*gocron.Scheduler, error) {
	zona := cfg.Zona
	if zona == nil {
		zona = time.Local
	}
	s := gocron.NewScheduler(zona)

	programar := func(nombre, expr string, t Tarea) error {
		if expr == "" || t == nil {
			return nil
		}
		_, err := s.Cron(expr).Tag(nombre).Do(func() {
			if err := t(ctx); err != nil {
				log.Error().Err(err).Str("tarea", nombre).Msg("cron: tarea fallida")
				return
			}
			log.Info().Str("tarea", nombre).Msg("cron: tarea completada")
		})
		return err
	}

	if err := programar("liquidacion", cfg.ExprLiquidacion, cfg.Liquidacion); err != nil {
		return nil, err
	}
	if err := programar("stock_critico", cfg.ExprStockCritico, cfg.StockCritico); err != nil {
		return nil, err
	}

	s.StartAsync()
	log.Info().Int("tareas", len(s.Jobs())).Msg("cron: scheduler started")
	return s, nil
}
