package kafka

import "time"

// ReportEventMessage is the wire format on TopicReportEvents.
type ReportEventMessage struct {
	EventType  string    `json:"event_type"`
	ReportID   string    `json:"report_id"`
	OwnerID    string    `json:"owner_id"`
	ReportType string    `json:"report_type"`
	Version    int       `json:"version"`
	Status     string    `json:"status"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
