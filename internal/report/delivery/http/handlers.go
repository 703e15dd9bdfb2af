package http

import (
	"careersight-srv/internal/report"
	"careersight-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary List reports
// @Description List the caller's reports with optional type and status filters
// @Tags Report
// @Produce json
// @Param report_type query string false "Report type filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports [get]
func (h *handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: processListRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: usecase ListReports failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(o))
}

// @Summary Get the current report
// @Description Return the latest published report of the given type, cache first
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type} [get]
func (h *handler) GetExistingReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	o, err := h.uc.GetExistingReport(ctx, sc, reportType)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetExistingReport: usecase GetExistingReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}
	if o == nil {
		response.Error(c, errReportNotFound)
		return
	}

	response.OK(c, h.newReportResp(*o))
}

// @Summary Check generation readiness
// @Description Report whether all required source forms are completed for the report type
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} readinessResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type}/readiness [get]
func (h *handler) CheckReadiness(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	o, err := h.uc.HasMinimumData(ctx, sc, reportType)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CheckReadiness: usecase HasMinimumData failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReadinessResp(o))
}

// @Summary Get the pending report
// @Description Return the in-flight pending report of the given type, for UI polling
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type}/pending [get]
func (h *handler) GetPendingReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	o, err := h.uc.GetPendingReport(ctx, sc, reportType)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetPendingReport: usecase GetPendingReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}
	if o == nil {
		response.Error(c, errReportNotFound)
		return
	}

	response.OK(c, h.newReportResp(*o))
}

// @Summary Generate a report synchronously
// @Description Run the generation pipeline and wait for the result. Skips the LLM when source data is unchanged unless force is set
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Param force query bool false "Regenerate even when source data is unchanged"
// @Success 200 {object} reportResp
// @Failure 400 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Failure 504 {object} response.Resp
// @Router /api/v1/reports/{report_type}/generate [post]
func (h *handler) GenerateReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGenerateRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GenerateReport: processGenerateRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.GenerateReport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GenerateReport: usecase GenerateReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// @Summary Queue background generation
// @Description Create a pending placeholder and schedule generation. A no-op while one is already pending
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} queueResp
// @Failure 400 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type}/queue [post]
func (h *handler) QueueReportGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	o, err := h.uc.QueueReportGeneration(ctx, sc, report.QueueInput{ReportType: reportType})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.QueueReportGeneration: usecase QueueReportGeneration failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newQueueResp(o))
}

// @Summary Mark a report as viewed
// @Description Record the first time the owner opened the report
// @Tags Report
// @Accept json
// @Produce json
// @Param body body markViewedReq true "Report to mark"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/viewed [post]
func (h *handler) MarkViewed(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processMarkViewedRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.MarkViewed: processMarkViewedRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	if err := h.uc.MarkViewed(ctx, sc, req.ReportID); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.MarkViewed: usecase MarkViewed failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// @Summary Download report artifact
// @Description Generate a presigned download URL for the current published report
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} downloadResp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type}/download [get]
func (h *handler) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	o, err := h.uc.DownloadReport(ctx, sc, reportType)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadReport: usecase DownloadReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDownloadResp(o))
}

// @Summary Clear the report cache
// @Description Drop the cached current report so the next read hits the store
// @Tags Report
// @Produce json
// @Param report_type path string true "Report type"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_type}/cache [delete]
func (h *handler) ClearCache(c *gin.Context) {
	ctx := c.Request.Context()

	reportType, sc := h.reportTypeAndScope(c)

	if err := h.uc.ClearCache(ctx, sc, reportType); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ClearCache: usecase ClearCache failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
