package http

import (
	"careersight-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.Auth())
	{
		api.GET("/reports", h.ListReports)
		api.POST("/reports/viewed", h.MarkViewed)

		api.GET("/reports/:report_type", h.GetExistingReport)
		api.GET("/reports/:report_type/readiness", h.CheckReadiness)
		api.GET("/reports/:report_type/pending", h.GetPendingReport)
		api.GET("/reports/:report_type/download", h.DownloadReport)
		api.POST("/reports/:report_type/generate", h.GenerateReport)
		api.POST("/reports/:report_type/queue", h.QueueReportGeneration)
		api.DELETE("/reports/:report_type/cache", h.ClearCache)
	}
}
