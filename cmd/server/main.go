package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dxy/internal/config"
	"dxy/internal/infra"
	"dxy/internal/repository"
	"dxy/internal/router"
	"dxy/internal/service"
	"dxy/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON in production
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if cfg.JWTSecret == "" || cfg.OperadorPasswordHash == "" {
		log.Warn().Msg("JWT_SECRET u OPERADOR_PASSWORD_HASH vacíos: el login va a fallar")
	}

	zona, err := time.LoadLocation(cfg.ZonaHoraria)
	if err != nil {
		log.Warn().Err(err).Str("zona", cfg.ZonaHoraria).Msg("zona horaria inválida, se usa la local")
		zona = time.Local
	}
	reloj := service.NuevoReloj(zona)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var asistente *infra.AsistenteClient
	if cfg.AsistenteURL != "" {
		asistente = infra.NewAsistenteClient(cfg.AsistenteURL, time.Duration(cfg.AsistenteTimeoutSeconds)*time.Second, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	}

	// Worker handlers are wired here (composition root) so the pool reaches
	// the sidecar and the mailer without going through the services.
	mailer := infra.NewMailer(cfg)
	handlers := map[string]worker.Handler{
		worker.QueueEmail: worker.NewEmailWorker(mailer),
	}
	if asistente != nil {
		handlers[worker.QueueConsejos] = worker.NewConsejoWorker(asistente, worker.NewConsejoStore(rdb))
	}
	worker.NewPool(rdb, handlers).Start(ctx, cfg.WorkerPoolSize)

	// Scheduled tasks
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaDiariaRepository(db)
	partnerSvc := service.NewPartnerService(repository.NewPartnerRepository(db), worker.NewDispatcher(rdb), reloj)
	dashboardSvc := service.NewDashboardService(productoRepo, ventaRepo, reloj)
	scheduler, err := worker.StartCron(ctx, worker.CronConfig{
		Zona:             zona,
		ExprLiquidacion:  cfg.CronLiquidacion,
		ExprStockCritico: cfg.CronStockCritico,
		Liquidacion:      partnerSvc.NotificarMesAnterior,
		StockCritico:     dashboardSvc.ReportarStockCritico,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start cron")
	}
	defer scheduler.Stop()

	r := router.New(ctx, cfg, db, rdb, asistente, reloj)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // image imports wait on the sidecar
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("DXY backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
