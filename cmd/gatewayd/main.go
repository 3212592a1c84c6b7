package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sequencer_gateway/internal/app/service"
	"sequencer_gateway/internal/client"
	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/configloader"
	"sequencer_gateway/internal/infrastructure/gateway"
	networkdefinition "sequencer_gateway/internal/infrastructure/network/definition"
	"sequencer_gateway/internal/infrastructure/restapi"
	"sequencer_gateway/internal/pkg/logger"
	"sequencer_gateway/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gatewayd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configloader.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitSlog(zapLogger)

	var handlerOpts restapi.RouterOptions
	handlerOpts.CORSAllowedOrigins = cfg.Server.CORSAllowedOrigins

	var gatewayMetrics *metrics.GatewayMetrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		gatewayMetrics = metrics.MustRegisterMetrics(reg)
		handlerOpts.MetricsPath = cfg.Metrics.Path
		handlerOpts.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	sequencer, err := client.NewSequencerClient(client.Options{
		Network:          cfg.Network.Name,
		BaseURL:          cfg.Network.BaseURL,
		FeederGatewayURL: cfg.Network.FeederGatewayURL,
		GatewayURL:       cfg.Network.GatewayURL,
		ChainID:          entity.ChainID(cfg.Network.ChainID),
		Gateway: gateway.Config{
			RequestTimeout:  cfg.RequestTimeout(),
			RateLimit:       cfg.HTTPClient.RateLimitPerSecond,
			RateBurst:       cfg.HTTPClient.RateBurst,
			MaxConnsPerHost: cfg.HTTPClient.MaxConnsPerHost,
			Metrics:         gatewayMetrics,
		},
		Waiter: service.WaiterConfig{
			PollInterval:       cfg.PollInterval(),
			MaxConcurrentWaits: cfg.Waiter.MaxConcurrentWaits,
		},
	}, zapLogger)
	if err != nil {
		return err
	}
	zapLogger.Info("Sequencer client initialized",
		zap.String("feederGateway", sequencer.Target().FeederGatewayURL),
		zap.String("gateway", sequencer.Target().GatewayURL),
		zap.String("chainID", string(sequencer.ChainID())))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	networks := networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter())
	handler := restapi.NewGatewayHandler(sequencer, networks, cfg.MaxWait(), zapLogger)
	router := restapi.SetupRouter(handler, handlerOpts)

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		zapLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	zapLogger.Info("Server exiting")
	return nil
}
