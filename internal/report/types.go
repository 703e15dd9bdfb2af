package report

import (
	"encoding/json"

	"careersight-srv/pkg/paginator"
)

// Generation failure kinds surfaced to callers for UI-level messaging.
const (
	KindAPITimeout = "API_TIMEOUT"
	KindParseError = "PARSE_ERROR"
	KindException  = "EXCEPTION"
)

// GenerateError is the discriminated error returned when generation fails.
// It never carries raw transport or exception text.
type GenerateError struct {
	Kind    string
	Message string
}

func (e *GenerateError) Error() string {
	if e.Message == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Message
}

// QueueItem is the payload placed on the generation queue. The pending
// report ID lets the worker re-validate the placeholder before processing.
type QueueItem struct {
	ReportType      string `json:"report_type"`
	OwnerID         string `json:"owner_id"`
	PendingReportID string `json:"pending_report_id"`
}

// EncodeQueueItem serializes a queue item for the queue runtime.
func EncodeQueueItem(item QueueItem) ([]byte, error) {
	return json.Marshal(item)
}

// DecodeQueueItem deserializes a queue payload.
func DecodeQueueItem(payload []byte) (QueueItem, error) {
	var item QueueItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return QueueItem{}, err
	}
	return item, nil
}

type GenerateInput struct {
	ReportType string
	Force      bool
}

type QueueInput struct {
	ReportType string
}

type ListInput struct {
	ReportType string
	Status     string
	PagQuery   paginator.PaginateQuery
}

// ReadinessOutput tells the UI whether generation can start and which
// prerequisite forms are still missing.
type ReadinessOutput struct {
	ReportType   string   `json:"report_type"`
	Ready        bool     `json:"ready"`
	MissingForms []string `json:"missing_forms,omitempty"`
}

type QueueOutput struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	QueuedAt string `json:"queued_at,omitempty"`
}

type ReportOutput struct {
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

type DownloadOutput struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
	FileName    string `json:"file_name"`
}

type ListOutput struct {
	Reports   []ReportOutput      `json:"reports"`
	Paginator paginator.Paginator `json:"paginator"`
}
