package cmd

import (
	"context"
	"fmt"

	"recon-engine/core/config"
	"recon-engine/core/database"
	"recon-engine/core/history"
	"recon-engine/core/logger"
	"recon-engine/core/report"
	"recon-engine/core/rules"
	"recon-engine/core/source"
	"recon-engine/core/storage"
	"recon-engine/feature/runs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment holds the collaborators a command wires into the engines.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
	pool   *pgxpool.Pool
}

// setup loads configuration and creates the logger and storage client. Database and
// PostgreSQL connections are opened on demand.
func setup() (*environment, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &environment{cfg: cfg, logger: l, client: client}, nil
}

// connect opens the database and the PostgreSQL pool that set needs. Failures are
// logged, and the sources that need the missing backend fail when loaded.
func (e *environment) connect(ctx context.Context, set *rules.RuleSet, runCfg report.Config) {
	needDB, needPG := runCfg.History, false
	if set != nil {
		for _, spec := range set.Sources {
			switch spec.Kind {
			case source.KindTable:
				needDB = true
			case source.KindQuery:
				needPG = true
			}
		}
	}
	if needDB {
		e.connectDatabase()
	}
	if needPG {
		e.connectPostgres(ctx)
	}
}

func (e *environment) connectDatabase() {
	if e.db != nil {
		return
	}
	db, err := database.Connect(e.cfg.Database)
	if err != nil {
		e.logger.Warn("Optional database connection failed", zap.Error(err))
		return
	}
	e.db = db
	e.logger.Info("Connected to database", zap.String("driver", e.cfg.Database.Driver))
}

func (e *environment) connectPostgres(ctx context.Context) {
	if e.pool != nil || e.cfg.Source.PostgresURL == "" {
		return
	}
	pool, err := source.ConnectPostgres(ctx, e.cfg.Source)
	if err != nil {
		e.logger.Warn("Optional PostgreSQL connection failed", zap.Error(err))
		return
	}
	e.pool = pool
}

func (e *environment) loader() *source.Loader {
	opts := []source.Option{
		source.WithStorage(e.client, e.cfg.Storage.Bucket),
		source.WithLogger(logger.Zap(e.logger)),
	}
	if e.db != nil {
		opts = append(opts, source.WithDatabase(e.db))
	}
	if e.pool != nil {
		opts = append(opts, source.WithPostgres(e.pool))
	}
	return source.NewLoader(opts...)
}

// service builds a run service for runCfg.
func (e *environment) service(ctx context.Context, runCfg report.Config, metrics *runs.Metrics) (*runs.Service, error) {
	opts := []runs.Option{runs.WithMetrics(metrics)}

	if runCfg.Publish {
		if err := storage.EnsureBucket(ctx, e.client, e.cfg.Storage.Bucket, e.cfg.Storage.Region); err != nil {
			return nil, err
		}
		opts = append(opts, runs.WithPublisher(e.client, e.cfg.Storage.Bucket))
	}

	if runCfg.History {
		if e.db == nil {
			return nil, fmt.Errorf("run history needs a database connection")
		}
		store, err := history.NewStore(e.db)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runs.WithHistory(store))
	}

	return runs.NewService(e.loader(), runCfg, e.logger, opts...), nil
}

func (e *environment) close() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = e.logger.Sync()
}
