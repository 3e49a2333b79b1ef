package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/faturo-inc/faturo/internal/application/billing"
	paymentUsecases "github.com/faturo-inc/faturo/internal/application/payment/usecases"
	subUsecases "github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/infrastructure/config"
	"github.com/faturo-inc/faturo/internal/infrastructure/database"
	"github.com/faturo-inc/faturo/internal/infrastructure/directory"
	"github.com/faturo-inc/faturo/internal/infrastructure/email"
	"github.com/faturo-inc/faturo/internal/infrastructure/queue"
	"github.com/faturo-inc/faturo/internal/infrastructure/repository"
	"github.com/faturo-inc/faturo/internal/infrastructure/scheduler"
	httpRouter "github.com/faturo-inc/faturo/internal/interfaces/http"
	"github.com/faturo-inc/faturo/internal/interfaces/http/handlers"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the billing HTTP server with the charge dispatch scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env)

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

	// Repositories
	subscriptionRepo := repository.NewSubscriptionRepository(database.Get())
	planRepo := repository.NewSubscriptionPlanRepository(database.Get())
	paymentRepo := repository.NewPaymentRepository(database.Get())
	paymentLogRepo := repository.NewPaymentLogRepository(database.Get())

	// Infrastructure services
	chargeQueue := queue.NewRedisQueue(redisClient, cfg.Billing.QueueKey, log)
	notifier := email.NewSMTPNotifier(cfg.Email)
	subscriberDirectory := directory.NewHTTPDirectory(cfg.Directory)

	// Use cases
	createSubscriptionUC := subUsecases.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, subscriberDirectory, log)
	getSubscriptionUC := subUsecases.NewGetSubscriptionUseCase(subscriptionRepo, log)
	updateSubscriptionUC := billing.NewUpdateSubscriptionUseCase(subscriptionRepo, planRepo, notifier, log)
	createPlanUC := subUsecases.NewCreatePlanUseCase(planRepo, log)
	getPlanUC := subUsecases.NewGetPlanUseCase(planRepo, log)
	listPlansUC := subUsecases.NewListPlansUseCase(planRepo, log)
	updatePlanUC := subUsecases.NewUpdatePlanUseCase(planRepo, log)
	getPaymentUC := paymentUsecases.NewGetPaymentUseCase(paymentRepo, log)
	listPaymentsUC := paymentUsecases.NewListPaymentsUseCase(paymentRepo, log)
	listPaymentLogsUC := paymentUsecases.NewListPaymentLogsUseCase(paymentRepo, paymentLogRepo, log)
	handleGatewayResultUC := paymentUsecases.NewHandleGatewayResultUseCase(paymentRepo, paymentLogRepo, log)

	// Charge dispatch scheduler
	chargeJob := billing.NewChargeSubscriptionsJob(subscriptionRepo, planRepo, chargeQueue, log)
	schedulerManager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := schedulerManager.RegisterChargeJob(chargeJob, cfg.Billing.ChargeInterval()); err != nil {
		log.Fatalw("failed to register charge job", "error", err)
	}
	schedulerManager.Start()
	defer func() {
		if err := schedulerManager.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	// HTTP
	subscriptionHandler := handlers.NewSubscriptionHandler(createSubscriptionUC, getSubscriptionUC, updateSubscriptionUC, log)
	planHandler := handlers.NewPlanHandler(createPlanUC, getPlanUC, listPlansUC, updatePlanUC, log)
	paymentHandler := handlers.NewPaymentHandler(getSubscriptionUC, getPaymentUC, listPaymentsUC, listPaymentLogsUC, log)
	webhookHandler := handlers.NewWebhookHandler(handleGatewayResultUC, log)

	router := httpRouter.NewRouter(subscriptionHandler, planHandler, paymentHandler, webhookHandler, log)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
