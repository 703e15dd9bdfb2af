package worker

import (
	"fmt"
)

// New creates a new worker server with dependency validation
func New(cfg Config) (*WorkerServer, error) {
	srv := &WorkerServer{
		l:             cfg.Logger,
		queueConfig:   cfg.QueueConfig,
		llmConfig:     cfg.LLMConfig,
		bucket:        cfg.Bucket,
		redisClient:   cfg.RedisClient,
		postgresDB:    cfg.PostgresDB,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		queue:         cfg.Queue,
		openaiClient:  cfg.OpenAIClient,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided
func (srv *WorkerServer) validate() error {
	// Core Configuration
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.queueConfig.BatchSize <= 0 {
		return fmt.Errorf("queue batch size must be greater than 0")
	}

	// Infrastructure clients
	if srv.redisClient == nil {
		return fmt.Errorf("redis client is required")
	}
	if srv.postgresDB == nil {
		return fmt.Errorf("postgres db is required")
	}
	if srv.minioClient == nil {
		return fmt.Errorf("minio client is required")
	}
	if srv.kafkaProducer == nil {
		return fmt.Errorf("kafka producer is required")
	}
	if srv.queue == nil {
		return fmt.Errorf("task queue is required")
	}

	// AI clients
	if srv.openaiClient == nil {
		return fmt.Errorf("openai client is required")
	}

	return nil
}
