package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/salon-queue/internal/metrics"
)

// Publisher hands a notification to a delivery channel.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// ===============================
// Log
// ===============================

type LogPublisher struct{}

func NewLogPublisher() *LogPublisher { return &LogPublisher{} }

func (LogPublisher) Publish(ctx context.Context, n Notification) error {
	zlog.Info().
		Str("entry_id", n.EntryID).
		Str("phone", n.Phone).
		Str("message", n.Message).
		Msg("customer called")
	metrics.Notifications.WithLabelValues("log", "ok").Inc()
	return nil
}

func (LogPublisher) Close() error { return nil }

// ===============================
// Asynq
// ===============================

const (
	TypeCustomerCalled = "notify:customer_called"
	QueueCritical      = "critical"
)

func NewCustomerCalledTask(n Notification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, errors.Wrap(err, "marshal notification")
	}
	return asynq.NewTask(
		TypeCustomerCalled,
		payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// AsynqPublisher enqueues a task for the worker process.
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

func (p *AsynqPublisher) Publish(ctx context.Context, n Notification) error {
	task, err := NewCustomerCalledTask(n)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task)
	if err != nil {
		metrics.Notifications.WithLabelValues("asynq", "error").Inc()
		return errors.Wrap(err, "enqueue notification")
	}

	metrics.Notifications.WithLabelValues("asynq", "ok").Inc()
	zlog.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("notification enqueued")
	return nil
}

func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}

// ===============================
// Kafka
// ===============================

// KafkaPublisher writes the notification keyed by entry, so repeated calls
// of one entry stay ordered on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, n Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.EntryID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeCustomerCalled)},
		},
	})
	if err != nil {
		metrics.Notifications.WithLabelValues("kafka", "error").Inc()
		return errors.Wrap(err, "write notification")
	}

	metrics.Notifications.WithLabelValues("kafka", "ok").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
