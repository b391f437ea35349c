package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalog HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	})

	return rootCmd
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, config.NewLogger(cfg.Logger), nil
}

func runMigrate() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		logger.Info().Msg("memory driver has no schema, nothing to migrate")
		return nil
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info().Msg("database migrated")
	return nil
}

// openRepository builds the product repository for the configured driver.
// SQL drivers are migrated on startup.
func openRepository(cfg config.DatabaseConfig, logger zerolog.Logger) (repositories.ProductRepository, handlers.HealthCheck, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn().Msg("using in-memory product repository, data is lost on restart")
		return repositories.NewInMemoryProductRepository(), nil, func() {}, nil
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}
	return repositories.NewGORMProductRepository(db), database.Ping(db), cleanup, nil
}

func runServe(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info().Msg("starting catalog API server")

	productRepo, healthCheck, closeDB, err := openRepository(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeDB()

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient
		logger.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("publishing product events to RabbitMQ")
	} else {
		logger.Info().Msg("RabbitMQ disabled, product events are not published")
	}

	productService := services.NewProductService(productRepo, publisher, logger)

	app := server.New(server.Options{
		ProductService: productService,
		HealthCheck:    healthCheck,
		Logger:         logger,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Server.Port).Msg("HTTP server started")
		serverErrors <- app.Listen(cfg.Server.Port)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, starting graceful shutdown")
	}

	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server gracefully stopped")
	return nil
}
