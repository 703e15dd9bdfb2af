package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careersight-srv/config"
	configKafka "careersight-srv/config/kafka"
	configMinio "careersight-srv/config/minio"
	configPostgre "careersight-srv/config/postgre"
	configRedis "careersight-srv/config/redis"
	"careersight-srv/internal/worker"
	"careersight-srv/pkg/log"
	"careersight-srv/pkg/openai"
	"careersight-srv/pkg/taskqueue"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting CareerSight Report Worker...")

	// Kafka Producer (for publishing report lifecycle events)
	kafkaProducer, err := configKafka.Connect(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
		return
	}
	defer configKafka.Disconnect()
	logger.Info(ctx, "Kafka producer initialized")

	// Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Info(ctx, "PostgreSQL client initialized")

	// MinIO
	minioClient, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Info(ctx, "MinIO client initialized")

	// OpenAI
	openaiClient, err := openai.NewOpenAI(openai.OpenAIConfig{
		APIKey:            cfg.OpenAI.APIKey,
		Model:             cfg.OpenAI.Model,
		BaseURL:           cfg.OpenAI.BaseURL,
		RequestTimeout:    cfg.OpenAI.RequestTimeout,
		RequestsPerMinute: cfg.OpenAI.RequestsPerMinute,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize OpenAI client: %v", err)
		return
	}
	logger.Info(ctx, "OpenAI client initialized")

	// Generation queue
	queue, err := taskqueue.New(redisClient, taskqueue.QueueConfig{
		Name:              cfg.Queue.Name,
		VisibilityTimeout: time.Duration(cfg.Queue.VisibilityTimeoutMinutes) * time.Minute,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize task queue: %v", err)
		return
	}

	// Worker server
	srv, err := worker.New(worker.Config{
		Logger:        logger,
		QueueConfig:   cfg.Queue,
		LLMConfig:     cfg.OpenAI,
		Bucket:        cfg.MinIO.Bucket,
		RedisClient:   redisClient,
		PostgresDB:    postgresDB,
		MinIOClient:   minioClient,
		KafkaProducer: kafkaProducer,
		Queue:         queue,
		OpenAIClient:  openaiClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create worker server: %v", err)
		return
	}

	// Run worker server
	logger.Info(ctx, "Worker server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Worker server error: %v", err)
		return
	}

	logger.Info(ctx, "Worker server stopped gracefully")
}
