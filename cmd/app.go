package cmd

import (
	"context"
	"errors"
	"fmt"

	"bucket-manager/core/backend/gateway"
	"bucket-manager/core/catalog"
	"bucket-manager/core/config"
	"bucket-manager/core/database"
	"bucket-manager/core/docstore"
	"bucket-manager/core/logger"
	"bucket-manager/core/metrics"
	"bucket-manager/core/storage"
	"bucket-manager/feature/buckets"
	"bucket-manager/feature/integrity"
	"bucket-manager/feature/pools"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired services shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	db      *gorm.DB
	docs    *docstore.Store

	pools     *pools.Service
	buckets   *buckets.Service
	integrity *integrity.Service
}

// newApp loads the configuration and connects every backend the services
// need: object storage for pools, the catalog database and Redis.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	cat := catalog.New(db)
	if err := cat.Migrate(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}

	docs, err := docstore.Open(ctx, cfg.Redis)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	m := metrics.New()
	gw := gateway.New(client, cat, docs, gateway.Options{
		Namespace:   cfg.Storage.Namespace,
		Region:      cfg.Storage.Region,
		Concurrency: cfg.Pools.CreateConcurrency,
	}, logg)

	poolSvc := pools.NewService(gw, cfg.Pools, nil, logg, m)

	return &app{
		cfg:       cfg,
		logger:    logg,
		metrics:   m,
		db:        db,
		docs:      docs,
		pools:     poolSvc,
		buckets:   buckets.NewService(gw, poolSvc, cfg.Pools, logg, m),
		integrity: integrity.NewService(gw, cfg.Pools, db, logg),
	}, nil
}

// Close releases connections and flushes the logger.
func (a *app) Close() error {
	var errs []error
	if err := a.docs.Close(); err != nil {
		errs = append(errs, err)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
