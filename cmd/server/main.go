package main

import (
	"careerai/internal/cache"
	"careerai/internal/config"
	"careerai/internal/events"
	"careerai/internal/llm"
	"careerai/internal/metrics"
	"careerai/internal/repository"
	"careerai/internal/service"
	"careerai/internal/store"
	"careerai/internal/transport/rest"
	"careerai/internal/transport/ws"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title CareerAI API
// @version 1.0
// @description Ikigai questionnaire, AI career synthesis and progress tracking
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	logger.Info("AI config",
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", cfg.AI.Model),
		zap.Duration("timeout", cfg.AI.Timeout()),
		zap.Bool("apiKeyConfigured", cfg.AI.IsEnabled()),
	)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Event publishing is optional
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer conn.Close()

		amqpPublisher, err := events.NewAMQPPublisher(conn)
		if err != nil {
			logger.Fatal("failed to declare event exchange", zap.Error(err))
		}
		publisher = amqpPublisher
		logger.Info("publishing submission events", zap.String("exchange", events.Exchange))
	}

	model, err := llm.New(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("failed to build summarization model", zap.Error(err))
	}
	mt := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to create user indexes", zap.Error(err))
	}
	resultRepo := repository.NewResultRepo(db)

	// Initialize caches and stores
	backend := cache.NewSliceCache(rdb)
	results := store.NewResultStore(backend)
	checklist := store.NewChecklistStore(backend)
	wizards := cache.NewWizardCache(rdb)
	revoked := cache.NewTokenCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, revoked, cfg.JWTSecret, cfg.TokenTTL, logger)
	summarizeSvc := service.NewSummarizeService(model, cfg.AI.Timeout(), mt, logger)
	wizardSvc := service.NewWizardService(wizards, results, checklist, resultRepo, summarizeSvc, publisher, mt, logger)
	progressSvc := service.NewProgressService(results, checklist, resultRepo, logger)

	wsHub := ws.NewHub(logger)
	wizardSvc.SetBroadcaster(wsHub)

	container := &rest.Container{
		Config:           cfg,
		AuthService:      authSvc,
		SummarizeService: summarizeSvc,
		WizardService:    wizardSvc,
		ProgressService:  progressSvc,
		WSHub:            wsHub,
		WSHandler:        ws.NewHandler(wsHub, authSvc, results, logger),
		Metrics:          mt,
		Logger:           logger,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: rest.NewRouter(container),
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort), zap.String("model", model.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
