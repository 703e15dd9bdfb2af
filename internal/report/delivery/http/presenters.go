package http

import (
	"encoding/json"

	"careersight-srv/internal/report"
	"careersight-srv/pkg/paginator"
)

// =====================================================
// Request DTOs
// =====================================================

type generateReq struct {
	ReportType string `form:"-"`
	Force      bool   `form:"force"`
}

func (r generateReq) toInput() report.GenerateInput {
	return report.GenerateInput{
		ReportType: r.ReportType,
		Force:      r.Force,
	}
}

type listReq struct {
	ReportType string `form:"report_type"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	Limit      int64  `form:"limit"`
}

func (r listReq) toInput() report.ListInput {
	return report.ListInput{
		ReportType: r.ReportType,
		Status:     r.Status,
		PagQuery: paginator.PaginateQuery{
			Page:  r.Page,
			Limit: r.Limit,
		},
	}
}

type markViewedReq struct {
	ReportID string `json:"report_id" binding:"required"`
}

// =====================================================
// Response DTOs
// =====================================================

type reportResp struct {
	ID                        string          `json:"id"`
	ReportType                string          `json:"report_type"`
	Version                   int             `json:"version"`
	Status                    string          `json:"status"`
	Data                      json.RawMessage `json:"data,omitempty"`
	ErrorMessage              string          `json:"error_message,omitempty"`
	ModelUsed                 string          `json:"model_used,omitempty"`
	GenerationDurationSeconds float64         `json:"generation_duration_seconds,omitempty"`
	GeneratedAt               *string         `json:"generated_at,omitempty"`
	ViewedAt                  *string         `json:"viewed_at,omitempty"`
	CreatedAt                 string          `json:"created_at"`
}

type readinessResp struct {
	ReportType   string   `json:"report_type"`
	Ready        bool     `json:"ready"`
	MissingForms []string `json:"missing_forms,omitempty"`
}

type queueResp struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	QueuedAt string `json:"queued_at,omitempty"`
}

type downloadResp struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
	FileName    string `json:"file_name"`
}

type listResp struct {
	Reports   []reportResp                `json:"reports"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h *handler) newReportResp(o report.ReportOutput) reportResp {
	return reportResp{
		ID:                        o.ID,
		ReportType:                o.ReportType,
		Version:                   o.Version,
		Status:                    o.Status,
		Data:                      o.Data,
		ErrorMessage:              o.ErrorMessage,
		ModelUsed:                 o.ModelUsed,
		GenerationDurationSeconds: o.GenerationDurationSeconds,
		GeneratedAt:               o.GeneratedAt,
		ViewedAt:                  o.ViewedAt,
		CreatedAt:                 o.CreatedAt,
	}
}

func (h *handler) newReadinessResp(o report.ReadinessOutput) readinessResp {
	return readinessResp{
		ReportType:   o.ReportType,
		Ready:        o.Ready,
		MissingForms: o.MissingForms,
	}
}

func (h *handler) newQueueResp(o report.QueueOutput) queueResp {
	return queueResp{
		ReportID: o.ReportID,
		Status:   o.Status,
		Message:  o.Message,
		QueuedAt: o.QueuedAt,
	}
}

func (h *handler) newDownloadResp(o report.DownloadOutput) downloadResp {
	return downloadResp{
		DownloadURL: o.DownloadURL,
		ExpiresAt:   o.ExpiresAt,
		FileName:    o.FileName,
	}
}

func (h *handler) newListResp(o report.ListOutput) listResp {
	resp := listResp{
		Reports:   make([]reportResp, len(o.Reports)),
		Paginator: o.Paginator.ToResponse(),
	}
	for i, r := range o.Reports {
		resp.Reports[i] = h.newReportResp(r)
	}
	return resp
}
