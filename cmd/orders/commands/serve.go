package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/events"
	"github.com/vibedit/vibedit-orders-service/internal/handlers"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
	"github.com/vibedit/vibedit-orders-service/internal/repository"
	"github.com/vibedit/vibedit-orders-service/internal/server"
	"github.com/vibedit/vibedit-orders-service/internal/service"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the payment event consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runServer(ctx, cfg, logger, migrate); err != nil {
				logger.Error("Server exited with error", zap.Error(err))
				return err
			}
			logger.Info("Server exited")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending database migrations before serving")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) error {
	logger.Info("Starting orders-service",
		zap.String("environment", cfg.Environment),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("order_caching", cfg.Features.EnableOrderCaching),
		zap.Bool("order_events", cfg.Features.EnableOrderEvents),
		zap.Bool("payments_sync", cfg.Features.EnablePaymentsSync),
	)

	db, err := repository.OpenPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := repository.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	orderRepo := repository.NewPostgresOrderRepository(db, logger)

	var orderCache repository.OrderCache
	if cfg.Features.EnableOrderCaching {
		redisClient := repository.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		orderCache = repository.NewRedisOrderCache(redisClient, cfg.Redis.TTL, m, logger)
	}

	var publisher service.OrderEventPublisher
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	orderService := service.NewOrderService(orderRepo, orderCache, publisher, m, cfg.Features, logger)

	checks := []handlers.ReadinessCheck{{Name: "postgres", Check: orderService.Ping}}
	if orderCache != nil {
		checks = append(checks, handlers.ReadinessCheck{Name: "redis", Check: orderService.PingCache})
	}

	h := handlers.NewHandlers(orderService, checks, cfg, Version, logger)
	srv := server.New(cfg, h, m, logger)

	var consumer *events.KafkaConsumer
	if cfg.Features.EnablePaymentsSync {
		payments := service.NewPaymentService(orderService, logger)
		consumer = events.NewKafkaConsumer(cfg.Kafka, payments, m, logger)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			if err := consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if consumer != nil {
			if err := consumer.Stop(); err != nil {
				logger.Warn("Failed to close payment consumer", zap.Error(err))
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
