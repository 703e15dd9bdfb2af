package usecase

import (
	"time"

	"careersight-srv/internal/report"
	"careersight-srv/internal/report/repository"
	submissionRepo "careersight-srv/internal/submission/repository"
	pkgLog "careersight-srv/pkg/log"
	"careersight-srv/pkg/minio"
	"careersight-srv/pkg/openai"
	"careersight-srv/pkg/taskqueue"
)

const (
	defaultReportBucket = "careersight-reports"
	defaultSystemPrompt = "You are a career analyst. Respond with a single JSON object containing exactly the requested keys, with no extra commentary."
)

// Config holds configuration for the report pipeline.
type Config struct {
	ReportBucket string
	SystemPrompt string
	// QueueDelay is how long a queued item waits before becoming claimable.
	QueueDelay time.Duration
	// ImmediateDispatch kicks a claim attempt right after a zero-delay
	// enqueue instead of waiting for the next worker tick.
	ImmediateDispatch bool
}

type implUseCase struct {
	l           pkgLog.Logger
	repo        repository.Repository
	cache       repository.Cache
	submissions submissionRepo.Repository
	llm         openai.IOpenAI
	queue       taskqueue.IQueue
	events      report.EventPublisher
	storage     minio.MinIO
	config      Config
}

// New creates a new report UseCase implementation.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	cache repository.Cache,
	submissions submissionRepo.Repository,
	llm openai.IOpenAI,
	queue taskqueue.IQueue,
	events report.EventPublisher,
	storage minio.MinIO,
	cfg Config,
) report.UseCase {
	if cfg.ReportBucket == "" {
		cfg.ReportBucket = defaultReportBucket
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}

	return &implUseCase{
		l:           l,
		repo:        repo,
		cache:       cache,
		submissions: submissions,
		llm:         llm,
		queue:       queue,
		events:      events,
		storage:     storage,
		config:      cfg,
	}
}
