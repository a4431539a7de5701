package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for golang-migrate
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chatmesh/chatmesh-importer/migrations"
	"github.com/chatmesh/chatmesh-importer/pkg/checkpoint"
	"github.com/chatmesh/chatmesh-importer/pkg/config"
	"github.com/chatmesh/chatmesh-importer/pkg/database"
	"github.com/chatmesh/chatmesh-importer/pkg/logging"
	"github.com/chatmesh/chatmesh-importer/pkg/remote"
	"github.com/chatmesh/chatmesh-importer/pkg/repositories"
	"github.com/chatmesh/chatmesh-importer/pkg/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var throttle bool
	resume := true

	cmd := &cobra.Command{
		Use:          "chatmesh-importer",
		Short:        "Imports data from a remote installation into the local store",
		Long: "chatmesh-importer copies groups, contacts, labels, broadcasts, messages,\n" +
			"flow starts and flow runs from a remote installation's API into a fresh\n" +
			"local database. Flow definitions must be loaded locally beforehand.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), throttle, resume)
		},
	}
	cmd.Flags().BoolVar(&throttle, "throttle", false, "pause between remote API pages")
	cmd.Flags().BoolVar(&resume, "resume", true,
		"resume from saved page checkpoints; --resume=false starts every entity from its first page")

	return cmd
}

func runImport(ctx context.Context, throttleFlag, resume bool) error {
	cfg, err := config.Load(version)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Remote.APIURL == "" {
		return fmt.Errorf("remote api_url must be configured")
	}
	if cfg.Remote.APIToken == "" {
		return fmt.Errorf("REMOTE_API_TOKEN must be set")
	}

	logger.Info("connecting to database",
		zap.String("dsn", logging.SanitizeConnectionString(cfg.Database.ConnectionString())))
	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %s", logging.SanitizeError(err))
	}
	defer db.Close()

	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %s", logging.SanitizeError(err))
	}
	if err := database.RunMigrations(sqlDB, migrations.FS, logger); err != nil {
		sqlDB.Close()
		return err
	}
	sqlDB.Close()

	var store checkpoint.Store
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = checkpoint.NewRedisStore(redisClient)
	} else {
		logger.Info("redis not configured, resume checkpoints kept in memory only")
		store = checkpoint.NewMemoryStore()
	}

	throttle := time.Duration(0)
	if throttleFlag || cfg.Remote.Throttle {
		throttle = time.Duration(cfg.Remote.ThrottleSeconds) * time.Second
	}

	deps := services.ImporterDeps{
		Client:      remote.NewClient(cfg.Remote.APIURL, cfg.Remote.APIToken, logger),
		Checkpoints: store,
		Orgs:        repositories.NewOrgRepository(db),
		Groups:      repositories.NewGroupRepository(db),
		Contacts:    repositories.NewContactRepository(db),
		Labels:      repositories.NewLabelRepository(db),
		Channels:    repositories.NewChannelRepository(db),
		Broadcasts:  repositories.NewBroadcastRepository(db),
		Messages:    repositories.NewMessageRepository(db),
		Flows:       repositories.NewFlowRepository(db),
		Starts:      repositories.NewFlowStartRepository(db),
		Runs:        repositories.NewFlowRunRepository(db),
		Counts:      repositories.NewFlowCountRepository(db),
	}

	importer := services.NewImporter(deps, throttle, logger)

	if !resume {
		if err := importer.ClearCheckpoints(ctx); err != nil {
			return fmt.Errorf("failed to clear resume checkpoints: %w", err)
		}
		logger.Info("cleared resume checkpoints, starting from the first page")
	}

	stats, runErr := importer.Run(ctx)
	if stats != nil {
		if out, err := yaml.Marshal(stats); err == nil {
			fmt.Println(string(out))
		}
	}
	if runErr != nil {
		logger.Error("import failed", zap.String("error", logging.SanitizeError(runErr)))
		return runErr
	}

	logger.Info("import finished")
	return nil
}
