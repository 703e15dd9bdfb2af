package http

import (
	"careersight-srv/internal/model"
	"careersight-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) reportTypeAndScope(c *gin.Context) (string, model.Scope) {
	return c.Param("report_type"), scope.GetScopeFromContext(c.Request.Context())
}

func (h *handler) processGenerateRequest(c *gin.Context) (generateReq, model.Scope, error) {
	var req generateReq

	if err := c.ShouldBindQuery(&req); err != nil {
		return req, model.Scope{}, err
	}
	req.ReportType = c.Param("report_type")

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processListRequest(c *gin.Context) (listReq, model.Scope, error) {
	var req listReq

	if err := c.ShouldBindQuery(&req); err != nil {
		return req, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processMarkViewedRequest(c *gin.Context) (markViewedReq, model.Scope, error) {
	var req markViewedReq

	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
