package repository

import (
	"context"
	"time"

	"StockScreener/internal/domain/models"
	pkgkafka "StockScreener/pkg/kafka"
)

// KafkaActivitySink publishes audit entries to a Kafka topic, keyed by team
// so one team's entries stay ordered within a partition.
type KafkaActivitySink struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaActivitySink(producer *pkgkafka.Producer, topic string) *KafkaActivitySink {
	return &KafkaActivitySink{producer: producer, topic: topic}
}

func (s *KafkaActivitySink) Record(ctx context.Context, entry models.ActivityEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return s.producer.Publish(ctx, s.topic, []byte(entry.TeamID), entry)
}
