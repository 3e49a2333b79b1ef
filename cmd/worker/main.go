package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/faturo-inc/faturo/internal/application/billing"
	paymentUsecases "github.com/faturo-inc/faturo/internal/application/payment/usecases"
	"github.com/faturo-inc/faturo/internal/infrastructure/config"
	"github.com/faturo-inc/faturo/internal/infrastructure/database"
	"github.com/faturo-inc/faturo/internal/infrastructure/gateway"
	"github.com/faturo-inc/faturo/internal/infrastructure/lease"
	"github.com/faturo-inc/faturo/internal/infrastructure/queue"
	"github.com/faturo-inc/faturo/internal/infrastructure/repository"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

// The charge worker consumes the billing queue and places charges with the
// payment gateway. It runs separately from the API server so gateway latency
// never backs up into request handling.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting charge worker", "environment", env)

	biztime.MustInit(cfg.Server.Timezone)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	subscriptionRepo := repository.NewSubscriptionRepository(database.Get())
	planRepo := repository.NewSubscriptionPlanRepository(database.Get())
	paymentRepo := repository.NewPaymentRepository(database.Get())
	paymentLogRepo := repository.NewPaymentLogRepository(database.Get())

	paymentGateway := gateway.NewHTTPClient(cfg.Gateway, log)
	chargeLease := lease.NewRedisLease(redisClient, "faturo:lease:")

	processChargeUC := paymentUsecases.NewProcessChargeUseCase(
		paymentRepo,
		paymentLogRepo,
		subscriptionRepo,
		planRepo,
		paymentGateway,
		chargeLease,
		cfg.Gateway.Timeout(),
		cfg.Billing.LeaseTTL(),
		log,
	)

	handler := func(ctx context.Context, msg billing.Message) error {
		return processChargeUC.Execute(ctx, paymentUsecases.ProcessChargeCommand{
			SubscriptionID: msg.Payload.SubscriptionID,
			SubscriberID:   msg.Payload.SubscriberID,
			TenantID:       msg.Payload.TenantID,
			Amount:         msg.Payload.Amount,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := queue.NewConsumer(redisClient, cfg.Billing.QueueKey, handler, cfg.Billing.MaxDeliveryAttempts, log)
	consumer.Start(ctx)

	log.Infow("charge worker started", "queue_key", cfg.Billing.QueueKey)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)

	cancel()
	consumer.Stop()

	log.Infow("charge worker stopped")
}
