package producer

import (
	"careersight-srv/internal/report"
	pkgKafka "careersight-srv/pkg/kafka"
	pkgLog "careersight-srv/pkg/log"
)

type implProducer struct {
	l        pkgLog.Logger
	producer pkgKafka.IProducer
}

// New creates a Kafka-backed report event publisher.
func New(l pkgLog.Logger, producer pkgKafka.IProducer) report.EventPublisher {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
