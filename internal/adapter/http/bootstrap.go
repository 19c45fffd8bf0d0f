package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/adapter/database/postgres"
	pgrepository "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/sqlite"
	sqliterepository "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/port"
	"todoapi/pkg/config"
	"todoapi/pkg/logging"
	"todoapi/pkg/telemetry"
)

// StartServer opens the configured store, wires the container and serves
// the API until the listener fails or the process is stopped.
func StartServer(cfg *config.AppConfig, metrics *telemetry.AppMetrics, logger *logging.Logger) error {
	userRepo, todoRepo, closeDB, err := openRepositories(cfg)

	if err != nil {
		return err
	}

	defer closeDB()

	container := NewContainer(userRepo, todoRepo, metrics)

	router := routes.SetupRouter(routes.HandlersConfig{
		UserHandler: container.UserHandler,
		TodoHandler: container.TodoHandler,
	}, metrics, logger, cfg)

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed to start", zap.Error(err))
		return err
	}

	return nil
}

func openRepositories(cfg *config.AppConfig) (port.UserRepository, port.TodoRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(context.Background(), cfg.DatabaseURL, cfg.MigrationsPath)

		if err != nil {
			return nil, nil, nil, err
		}

		return pgrepository.NewUserRepository(db), pgrepository.NewTodoRepository(db), db.Close, nil
	}

	db, err := sqlite.NewDB(cfg.DatabasePath, cfg.MigrationsPath)

	if err != nil {
		return nil, nil, nil, err
	}

	closeDB := func() { db.Close() }

	return sqliterepository.NewUserRepository(db), sqliterepository.NewTodoRepository(db), closeDB, nil
}
