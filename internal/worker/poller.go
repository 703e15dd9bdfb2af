package worker

import (
	"context"
	"time"

	"careersight-srv/internal/report"
	reportProducer "careersight-srv/internal/report/delivery/kafka/producer"
	reportPostgre "careersight-srv/internal/report/repository/postgre"
	reportRedis "careersight-srv/internal/report/repository/redis"
	reportUsecase "careersight-srv/internal/report/usecase"
	submissionPostgre "careersight-srv/internal/submission/repository/postgre"
)

// setupDomains initializes the report domain (repositories, usecase, event producer)
func (srv *WorkerServer) setupDomains(ctx context.Context) (report.UseCase, error) {
	reportRepo := reportPostgre.New(srv.l, srv.postgresDB)
	reportCache := reportRedis.New(srv.l, srv.redisClient)
	submissionRepo := submissionPostgre.New(srv.l, srv.postgresDB)
	eventProducer := reportProducer.New(srv.l, srv.kafkaProducer)

	uc := reportUsecase.New(
		srv.l,
		reportRepo,
		reportCache,
		submissionRepo,
		srv.openaiClient,
		srv.queue,
		eventProducer,
		srv.minioClient,
		reportUsecase.Config{
			ReportBucket: srv.bucket,
			SystemPrompt: srv.llmConfig.SystemPrompt,
			QueueDelay:   time.Duration(srv.queueConfig.DelayMinutes) * time.Minute,
		},
	)

	srv.l.Infof(ctx, "Report domain initialized")

	return uc, nil
}

// tick runs one poll cycle: requeue expired claims, then drain up to
// BatchSize due items. Stops early when the queue is empty or an
// infrastructure error suggests backing off until the next tick.
func (srv *WorkerServer) tick(ctx context.Context, uc report.UseCase) {
	requeued, err := srv.queue.RequeueExpired(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "worker.tick: Failed to requeue expired items: %v", err)
	} else if requeued > 0 {
		srv.l.Warnf(ctx, "worker.tick: Requeued %d expired items", requeued)
	}

	for i := 0; i < srv.queueConfig.BatchSize; i++ {
		processed, err := uc.ProcessNext(ctx)
		if err != nil {
			srv.l.Errorf(ctx, "worker.tick: Failed to process item: %v", err)
			return
		}
		if !processed {
			return
		}
	}
}
