package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"careersight-srv/internal/middleware"
	reportHTTP "careersight-srv/internal/report/delivery/http"
	reportProducer "careersight-srv/internal/report/delivery/kafka/producer"
	reportPostgre "careersight-srv/internal/report/repository/postgre"
	reportRedis "careersight-srv/internal/report/repository/redis"
	reportUsecase "careersight-srv/internal/report/usecase"
	submissionPostgre "careersight-srv/internal/submission/repository/postgre"
)

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := reportPostgre.New(srv.l, srv.postgresDB)
	cache := reportRedis.New(srv.l, srv.redisClient)
	submissionRepo := submissionPostgre.New(srv.l, srv.postgresDB)
	eventProducer := reportProducer.New(srv.l, srv.kafkaProducer)

	uc := reportUsecase.New(
		srv.l,
		repo,
		cache,
		submissionRepo,
		srv.openaiClient,
		srv.queue,
		eventProducer,
		srv.minioClient,
		reportUsecase.Config{
			ReportBucket:      srv.config.MinIO.Bucket,
			SystemPrompt:      srv.config.OpenAI.SystemPrompt,
			QueueDelay:        time.Duration(srv.config.Queue.DelayMinutes) * time.Minute,
			ImmediateDispatch: srv.config.Queue.ImmediateDispatch,
		},
	)

	handler := reportHTTP.New(srv.l, uc)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered")
	return nil
}
