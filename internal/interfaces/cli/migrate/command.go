package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faturo-inc/faturo/internal/infrastructure/config"
	"github.com/faturo-inc/faturo/internal/infrastructure/database"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Long:  `Bring the database schema up to date with the current persistence models.`,
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

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env, "database", cfg.Database.Database)

	if err := database.Get().AutoMigrate(
		&models.SubscriptionModel{},
		&models.SubscriptionPlanModel{},
		&models.PaymentModel{},
		&models.PaymentLogModel{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}
