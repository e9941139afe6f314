package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"file-storage-api/internal/infrastructure/mq"
)

// AuditPublisher is the narrow slice services need to emit audit events.
type AuditPublisher interface {
	GetInputChan() chan mq.Event
}

type RabbitMQ interface {
	AuditPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
