package app

import (
	"context"
	"time"

	"github.com/limloop/limloop/internal/authorization/jwt"
	"github.com/limloop/limloop/internal/config"
	"github.com/limloop/limloop/internal/handlers"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/points"
	"github.com/limloop/limloop/internal/storage"
	"github.com/limloop/limloop/internal/storage/postgresql"
	"go.uber.org/zap"
)

type App struct {
	config  config.Config
	storage storage.Storage
}

// NewApp creates a new App instance with the given config
func NewApp(cfg config.Config) *App {
	return &App{config: cfg}
}

// Start App
func (a *App) Start(ctx context.Context) error {
	logger.LoggerInit(a.config.LogLevel)
	logger.Log.Info("Starting application",
		zap.String("run_address", a.config.RunAddress),
		zap.String("database_uri", a.config.DatabaseURI),
		zap.String("log_level", a.config.LogLevel),
		zap.Int("token_timeout", a.config.TokenTimeout),
		zap.Int("orders_queue_size", a.config.OrdersQueueSize),
		zap.Int("points_workers", a.config.PointsWorkers),
		zap.Int("points_delayed_workers", a.config.PointsDelayedWorkers),
		zap.Int("points_delay", a.config.PointsDelay),
		zap.Int("points_delayed_batch", a.config.PointsDelayedBatch),
	)

	a.storage = postgresql.NewPsqlStorage(a.config.DatabaseURI)

	err := a.storage.InitStorage(ctx)
	if err != nil {
		return err
	}

	//make chan for transferring orders to the evaluator
	orderChan := make(chan *models.Order, a.config.OrdersQueueSize)

	evaluator := points.NewEvaluator(
		a.storage,
		a.config.PointsWorkers,
		a.config.PointsDelayedWorkers,
		a.config.PointsDelay,
		a.config.PointsDelayedBatch,
		orderChan)
	evaluator.Start(ctx)

	authorizer := jwt.NewJwtTokenizer(a.config.TokenKey, time.Duration(a.config.TokenTimeout)*time.Hour)
	router := handlers.NewHTTPRouter(a.storage, authorizer, orderChan)

	err = router.RouterInit(ctx)
	if err != nil {
		return err
	}
	err = router.StartRouter(a.config.RunAddress)
	if err != nil {
		return err
	}
	return nil
}

func (a *App) Stop(cancel context.CancelFunc) {
	logger.Log.Debug("Syncing logger")
	logger.Log.Sync()
	a.storage.DBClose()
	cancel()
	//wait for logging from workers
	time.Sleep(time.Second * 1)
}
