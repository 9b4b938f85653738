package main

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eventum-app/eventum/config"
	"github.com/eventum-app/eventum/internal/app"
	"github.com/eventum-app/eventum/internal/handler"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Redis and RabbitMQ are optional; search caching and notifications
	// degrade gracefully without them.
	var redisClient *redis.Client
	if cfg.CacheURL != "" {
		opts, err := redis.ParseURL(cfg.CacheURL)
		if err != nil {
			logger.Fatal("invalid cache url", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
	}

	var mqConn *amqp.Connection
	if cfg.MQURL != "" {
		mqConn, err = amqp.Dial(cfg.MQURL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
	}

	application := app.New(cfg, db, redisClient, mqConn, logger)
	if err := application.Init(); err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer application.Close()

	router := handler.NewRouter(application)
	logger.Info("server listening", zap.String("addr", cfg.Addr))
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
