package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/rabbit"
)

const (
	LogbookExchange = "logbook_topic"

	QueueEndOfDayReports = "end_of_day_reports"

	RoutingKeyWorkdayClosed = "workday.closed"
)

// WorkdayProducer publishes workday lifecycle events to the logbook exchange.
type WorkdayProducer struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewWorkdayProducer(client *rabbit.RabbitMQ, log logger.Logger) *WorkdayProducer {
	return &WorkdayProducer{
		client:   client,
		exchange: LogbookExchange,
		l:        log,
	}
}

// Setup declares the topic exchange. Idempotent.
func (p *WorkdayProducer) Setup(ctx context.Context) error {
	const op = "WorkdayProducer.Setup"

	if err := p.client.EnsureConnection(ctx); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: ensure connection failed: %w", op, err))
	}

	if err := p.client.Channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: declare exchange failed: %w", op, err))
	}
	return nil
}

// PublishWorkdayClosed emits a workday.closed event so the report worker can
// render the end-of-day export.
func (p *WorkdayProducer) PublishWorkdayClosed(ctx context.Context, msg models.WorkdayClosedMessage) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_workday_closed")

	if err := p.client.EnsureConnection(ctx); err != nil {
		p.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	err = retry(5, time.Second, func() error {
		return p.client.Channel.PublishWithContext(
			ctx,
			p.exchange,              // exchange
			RoutingKeyWorkdayClosed, // routing key
			false,                   // mandatory
			false,                   // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: msg.CorrelationID,
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	})

	metrics.RecordRabbitMQPublish(RoutingKeyWorkdayClosed, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish with context: %w", err))
	}

	p.l.Info(ctx, "workday closed event published", "day_key", msg.DayKey.String())
	return nil
}
