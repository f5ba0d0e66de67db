package router

import (
	"context"
	"time"

	"dxy/internal/config"
	"dxy/internal/handler"
	"dxy/internal/infra"
	"dxy/internal/middleware"
	"dxy/internal/repository"
	"dxy/internal/service"
	"dxy/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// asistente may be nil when no sidecar is configured; the endpoints that
// need it then answer 502. ctx bounds the background goroutines.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, asistente *infra.AsistenteClient, reloj service.Reloj) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(worker.Collectors()...)
	middleware.RegisterMetrics(reg)

	apiLimiter := middleware.RateLimiter(cfg.RateLimit, time.Minute)
	loginLimiter := middleware.LoginRateLimiter()
	go apiLimiter.Purgar(ctx, 5*time.Minute)
	go loginLimiter.Purgar(ctx, 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(apiLimiter.Middleware())

	// ── Infrastructure ───────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	consejos := worker.NewConsejoStore(rdb)

	// Typed nils would defeat the services' nil checks.
	var (
		extractor    service.ExtractorVentas
		interprete   service.InterpreteFacturas
		transcriptor service.Transcriptor
		colaConsejos worker.Encolador
		estadoAsist  func() string
	)
	if asistente != nil {
		extractor, interprete, transcriptor = asistente, asistente, asistente
		colaConsejos = dispatcher
		estadoAsist = func() string { return asistente.Estado().String() }
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	historialRepo := repository.NewHistorialCostoRepository(db)
	ventaRepo := repository.NewVentaDiariaRepository(db)
	pedidoRepo := repository.NewPedidoMayoristaRepository(db)
	facturaRepo := repository.NewFacturaCompraRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	gastoRepo := repository.NewGastoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo, historialRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, movimientoRepo, extractor, rdb, reloj, cfg.VentasDescuentoDesde)
	mayoristaSvc := service.NewMayoristaService(pedidoRepo, productoRepo, movimientoRepo)
	compraSvc := service.NewCompraService(facturaRepo, productoRepo, movimientoRepo, historialRepo, interprete)
	partnerSvc := service.NewPartnerService(partnerRepo, dispatcher, reloj)
	gastoSvc := service.NewGastoService(gastoRepo)
	calculadoraSvc := service.NewCalculadoraService(productoRepo)
	dashboardSvc := service.NewDashboardService(productoRepo, ventaRepo, reloj)
	asistenteSvc := service.NewAsistenteService(productoRepo, ventaRepo, colaConsejos, consejos, transcriptor)
	respaldoSvc := service.NewRespaldoService(db, productoRepo, ventaRepo, facturaRepo, partnerRepo, gastoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	mayoristaH := handler.NewMayoristaHandler(mayoristaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	partnersH := handler.NewPartnersHandler(partnerSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	calculadoraH := handler.NewCalculadoraHandler(calculadoraSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	asistenteH := handler.NewAsistenteHandler(asistenteSvc)
	respaldoH := handler.NewRespaldoHandler(respaldoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, estadoAsist))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes: a single operator account, no roles.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		prods := v1.Group("/productos")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/movimientos", productosH.ListarMovimientos)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.GET("/:id/historial-costos", productosH.HistorialCostos)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", ventasH.Listar)
			ventas.POST("", ventasH.Registrar)
			ventas.GET("/distribucion-pagos", ventasH.DistribucionPagos)
			ventas.POST("/importar-imagen", ventasH.ImportarImagen)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.DELETE("/:id", ventasH.Eliminar)
		}

		may := v1.Group("/mayorista")
		{
			may.GET("/pedidos", mayoristaH.ListarPedidos)
			may.POST("/pedidos", mayoristaH.Finalizar)
			may.POST("/interpretar", mayoristaH.Interpretar)
			may.GET("/catalogo", mayoristaH.Catalogo)
		}

		compras := v1.Group("/compras")
		{
			compras.GET("", comprasH.Listar)
			compras.POST("", comprasH.Registrar)
			compras.GET("/reporte-mensual", comprasH.ReporteMensual)
			compras.POST("/interpretar", comprasH.Interpretar)
		}

		partners := v1.Group("/partners")
		{
			partners.GET("", partnersH.Listar)
			partners.POST("", partnersH.Crear)
			partners.PATCH("/:id/estado", partnersH.CambiarEstado)
			partners.GET("/ventas", partnersH.ListarVentas)
			partners.POST("/ventas", partnersH.RegistrarVenta)
			partners.GET("/liquidacion", partnersH.Liquidacion)
			partners.POST("/liquidacion/notificar", partnersH.NotificarLiquidacion)
		}

		gastos := v1.Group("/gastos")
		{
			gastos.GET("", gastosH.Listar)
			gastos.POST("", gastosH.Crear)
			gastos.GET("/resumen", gastosH.Resumen)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		calc := v1.Group("/calculadora")
		{
			calc.POST("/combo", calculadoraH.Combo)
			calc.POST("/beneficio", calculadoraH.Beneficio)
			calc.GET("/perfiles", calculadoraH.Perfiles)
		}

		v1.GET("/dashboard", dashboardH.Obtener)

		asis := v1.Group("/asistente")
		{
			asis.POST("/consejos", asistenteH.SolicitarConsejo)
			asis.GET("/consejos/:id", asistenteH.ObtenerConsejo)
			asis.POST("/transcribir", asistenteH.Transcribir)
		}

		v1.GET("/respaldo/:coleccion", respaldoH.Exportar)
		v1.PUT("/respaldo/:coleccion", respaldoH.Importar)
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
