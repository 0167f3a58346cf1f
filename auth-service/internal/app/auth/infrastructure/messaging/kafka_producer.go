package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"bowlingapp/auth-service/internal/app/auth/entity"
	"bowlingapp/pkg/metrics"
)

// SecurityEventProducer публикует события безопасности в Kafka.
// Ключ сообщения - идентификатор пользователя, чтобы события одного
// пользователя попадали в одну партицию и сохраняли порядок.
type SecurityEventProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewSecurityEventProducer(brokers []string, topic string) *SecurityEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: time.Second,
	}

	return &SecurityEventProducer{writer: writer, topic: topic}
}

func (p *SecurityEventProducer) Publish(ctx context.Context, event entity.SecurityEvent) error {
	timer := metrics.NewKafkaProduceTimer("auth-service", p.topic)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal security event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write security event to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *SecurityEventProducer) Close() error {
	return p.writer.Close()
}
