package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"careersight-srv/internal/report"
	kafkaDelivery "careersight-srv/internal/report/delivery/kafka"
)

// PublishReportPublished emits a report.published event.
func (p *implProducer) PublishReportPublished(ctx context.Context, evt report.ReportEvent) error {
	return p.publish(ctx, kafkaDelivery.EventTypeReportPublished, evt)
}

// PublishReportFailed emits a report.failed event.
func (p *implProducer) PublishReportFailed(ctx context.Context, evt report.ReportEvent) error {
	return p.publish(ctx, kafkaDelivery.EventTypeReportFailed, evt)
}

func (p *implProducer) publish(ctx context.Context, eventType string, evt report.ReportEvent) error {
	msg := kafkaDelivery.ReportEventMessage{
		EventType:  eventType,
		ReportID:   evt.ReportID,
		OwnerID:    evt.OwnerID,
		ReportType: evt.ReportType,
		Version:    evt.Version,
		Status:     evt.Status,
		ErrorKind:  evt.ErrorKind,
		OccurredAt: evt.OccurredAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	// Key by owner so one owner's events stay ordered within a partition.
	if err := p.producer.Publish([]byte(evt.OwnerID), body); err != nil {
		return fmt.Errorf("failed to publish report event: %w", err)
	}

	p.l.Infof(ctx, "Published %s for report %s (owner %s)", eventType, evt.ReportID, evt.OwnerID)
	return nil
}
