package worker

import (
	"context"
	"database/sql"
	"time"

	"careersight-srv/config"
	pkgKafka "careersight-srv/pkg/kafka"
	"careersight-srv/pkg/log"
	"careersight-srv/pkg/minio"
	"careersight-srv/pkg/openai"
	"careersight-srv/pkg/redis"
	"careersight-srv/pkg/taskqueue"
)

// WorkerServer drains the report generation queue. It polls on a fixed
// interval, processes due items and sweeps expired claims back onto the
// ready queue.
type WorkerServer struct {
	// Core Configuration
	l           log.Logger
	queueConfig config.QueueConfig
	llmConfig   config.OpenAIConfig
	bucket      string

	// Infrastructure clients
	redisClient   redis.IRedis
	postgresDB    *sql.DB
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	queue         taskqueue.IQueue

	// AI clients
	openaiClient openai.IOpenAI
}

// Config holds all dependencies for the worker server.
type Config struct {
	// Core Configuration
	Logger      log.Logger
	QueueConfig config.QueueConfig
	LLMConfig   config.OpenAIConfig
	Bucket      string

	// Infrastructure clients
	RedisClient   redis.IRedis
	PostgresDB    *sql.DB
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	Queue         taskqueue.IQueue

	// AI clients
	OpenAIClient openai.IOpenAI
}

// Run starts the worker server and blocks until the context is cancelled.
func (srv *WorkerServer) Run(ctx context.Context) error {
	uc, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	pollInterval := time.Duration(srv.queueConfig.PollIntervalSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	srv.l.Infof(ctx, "Worker Server is running (poll interval %s, batch size %d)",
		pollInterval, srv.queueConfig.BatchSize)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			srv.l.Info(ctx, "Shutdown signal received, stopping worker...")
			srv.l.Info(ctx, "Worker Server stopped gracefully")
			return nil
		case <-ticker.C:
			srv.tick(ctx, uc)
		}
	}
}
