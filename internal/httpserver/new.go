package httpserver

import (
	"database/sql"
	"errors"

	"careersight-srv/config"
	pkgJWT "careersight-srv/pkg/jwt"
	pkgKafka "careersight-srv/pkg/kafka"
	"careersight-srv/pkg/log"
	"careersight-srv/pkg/minio"
	"careersight-srv/pkg/openai"
	pkgRedis "careersight-srv/pkg/redis"
	"careersight-srv/pkg/taskqueue"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	config      *config.Config

	// Infrastructure clients
	postgresDB    *sql.DB
	redisClient   pkgRedis.IRedis
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	queue         taskqueue.IQueue

	// AI clients
	openaiClient openai.IOpenAI

	// Authentication
	jwtManager *pkgJWT.Manager
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	Config      *config.Config

	// Infrastructure clients
	PostgresDB    *sql.DB
	RedisClient   pkgRedis.IRedis
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	Queue         taskqueue.IQueue

	// AI clients
	OpenAIClient openai.IOpenAI

	// Authentication
	JWTManager *pkgJWT.Manager
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.Default(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,

		// Infrastructure clients
		postgresDB:    cfg.PostgresDB,
		redisClient:   cfg.RedisClient,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		queue:         cfg.Queue,

		// AI clients
		openaiClient: cfg.OpenAIClient,

		// Authentication
		jwtManager: cfg.JWTManager,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}

	// Infrastructure clients
	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.minioClient == nil {
		return errors.New("minioClient is required")
	}
	if srv.kafkaProducer == nil {
		return errors.New("kafkaProducer is required")
	}
	if srv.queue == nil {
		return errors.New("task queue is required")
	}

	// AI clients
	if srv.openaiClient == nil {
		return errors.New("openaiClient is required")
	}

	// Authentication
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}

	return nil
}
