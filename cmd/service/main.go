package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "samudra/internal/app"
	"samudra/internal/entities"
	"samudra/internal/handlers/rest/healthcheck_head"
	"samudra/internal/handlers/rest/org_unit_ancestors_get"
	"samudra/internal/handlers/rest/org_unit_descendants_get"
	"samudra/internal/handlers/rest/org_unit_get"
	"samudra/internal/handlers/rest/org_unit_hierarchy_get"
	"samudra/internal/handlers/rest/org_unit_post"
	"samudra/internal/handlers/rest/org_unit_put"
	"samudra/internal/handlers/rest/ping_get"
	"samudra/internal/handlers/rest/pricing_rule_get"
	"samudra/internal/handlers/rest/pricing_rule_post"
	"samudra/internal/handlers/rest/pricing_rules_get"
	"samudra/internal/handlers/rest/shipment_cancel_post"
	"samudra/internal/handlers/rest/shipment_document_get"
	"samudra/internal/handlers/rest/shipment_get"
	"samudra/internal/handlers/rest/shipment_post"
	"samudra/internal/handlers/rest/shipment_status_post"
	"samudra/internal/handlers/rest/shipments_calculate_price_post"
	"samudra/internal/pkg/cache"
	"samudra/internal/pkg/config"
	"samudra/internal/pkg/dotenv"
	"samudra/internal/pkg/grpcclient"
	"samudra/internal/pkg/kafka"
	metrics_system "samudra/internal/pkg/metrics"
	"samudra/internal/pkg/middlewares/graceful_shutdown"
	"samudra/internal/pkg/middlewares/metrics"
	"samudra/internal/pkg/middlewares/rate_limiter"
	"samudra/internal/pkg/middlewares/timeout"
	"samudra/internal/pkg/postgres"
	"samudra/pkg/logger"
	"samudra/pkg/logger/zap_adapter"
	"samudra/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting samudra service")

	if _, err := os.Stat(dotenv.File()); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	if cfg.Log.Level != "" {
		leveled, err := zap_adapter.NewZapAdapter(zap_adapter.WithLevel(cfg.Log.Level))
		if err != nil {
			mainLog.Error("logger level", logger.NewField("error", err))
			return
		}
		defer func() {
			_ = leveled.Sync()
		}()
		appLogger = leveled
		mainLog = appLogger.With()
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrationsEnabled {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	redisCache, err := cache.NewRedisAdapter(cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			runLog.Error("failed to close redis client",
				logger.NewField("error", err),
			)
		}
	}()

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka, splitBrokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	// conn == nil, если FORWARDER_GRPC_HOST не задан
	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.Forwarder)
	if err != nil {
		return fmt.Errorf("gRPC client: %w", err)
	}
	defer func() {
		if conn == nil {
			return
		}
		err := conn.Close()
		if err != nil {
			runLog.Error("failed to close gRPC connection",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, conn, redisCache, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	dependencies := []healthcheck_head.Pinger{pool, redisCache}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server, dependencies),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, dependencies),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()

	// ctx уже отменен, задачи выходят на ближайшем тике
	businessApp.BackgroundWorkers.Wait()
	runLog.Info("background tasks stopped")

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
	dependencies []healthcheck_head.Pinger,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst)), "/healthcheck", "/metrics"))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, dependencies...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/shipments/calculate-price", shipments_calculate_price_post.New(log, app.ServicePricing)).Methods("POST")
	router.Handle("/shipments", shipment_post.New(log, app.ServiceShipment)).Methods("POST")
	router.Handle("/shipments/{waybill}", shipment_get.New(log, app.ServiceShipment)).Methods("GET")
	router.Handle("/shipments/{waybill}/status", shipment_status_post.New(log, app.ServiceShipment)).Methods("POST")
	router.Handle("/shipments/{waybill}/cancel", shipment_cancel_post.New(log, app.ServiceShipment)).Methods("POST")
	router.Handle("/shipments/{waybill}/document", shipment_document_get.New(log, app.ServiceShipment)).Methods("GET")

	router.Handle("/pricing-rules", pricing_rule_post.New(log, app.ServicePricing)).Methods("POST")
	router.Handle("/pricing-rules", pricing_rules_get.New(log, app.ServicePricing)).Methods("GET")
	router.Handle("/pricing-rules/{id}", pricing_rule_get.New(log, app.ServicePricing)).Methods("GET")

	initOrgUnitRoutes(router.PathPrefix("/divisions").Subrouter(), log, app.ServiceOrganization, entities.KindDivision)
	initOrgUnitRoutes(router.PathPrefix("/positions").Subrouter(), log, app.ServiceOrganization, entities.KindPosition)

	return router
}

// initOrgUnitRoutes: /hierarchy регистрируется раньше /{id}, иначе mux примет его за id.
func initOrgUnitRoutes(router *mux.Router, log logger.Logger, service application.ServiceOrganization, kind entities.OrgUnitKind) {
	router.Handle("", org_unit_post.New(log, service, kind)).Methods("POST")
	router.Handle("/hierarchy", org_unit_hierarchy_get.New(log, service, kind)).Methods("GET")
	router.Handle("/{id}", org_unit_get.New(log, service, kind)).Methods("GET")
	router.Handle("/{id}", org_unit_put.New(log, service, kind)).Methods("PUT")
	router.Handle("/{id}/hierarchy", org_unit_hierarchy_get.New(log, service, kind)).Methods("GET")
	router.Handle("/{id}/descendants", org_unit_descendants_get.New(log, service, kind)).Methods("GET")
	router.Handle("/{id}/ancestors", org_unit_ancestors_get.New(log, service, kind)).Methods("GET")
}

func initPprofRouter(isShuttingDown *atomic.Bool, dependencies []healthcheck_head.Pinger) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, dependencies...)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

func splitBrokers(brokers string) []string {
	list := strings.Split(brokers, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list
}
