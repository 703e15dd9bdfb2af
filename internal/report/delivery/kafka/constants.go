package kafka

const (
	// TopicReportEvents carries report lifecycle events for the notification
	// service and analytics consumers.
	TopicReportEvents = "career.report.events"
)

const (
	EventTypeReportPublished = "report.published"
	EventTypeReportFailed    = "report.failed"
)
