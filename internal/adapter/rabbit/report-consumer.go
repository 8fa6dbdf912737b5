package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/report"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/rabbit"
)

type Exporter interface {
	Export(ctx context.Context, scope models.ReportScope) (*models.Report, error)
}

type Notifier interface {
	Notify(notice models.Notice)
}

// ReportConsumer listens for workday.closed events and writes the end-of-day
// CSV to disk, notifying connected clients when it is ready.
type ReportConsumer struct {
	client    *rabbit.RabbitMQ
	exporter  Exporter
	notifier  Notifier
	exportDir string

	l logger.Logger
}

func NewReportConsumer(client *rabbit.RabbitMQ, exporter Exporter, notifier Notifier, exportDir string, log logger.Logger) *ReportConsumer {
	return &ReportConsumer{
		client:    client,
		exporter:  exporter,
		notifier:  notifier,
		exportDir: exportDir,
		l:         log,
	}
}

func (c *ReportConsumer) declareAndBindQueue(ctx context.Context) (amqp.Queue, error) {
	const op = "ReportConsumer.declareAndBindQueue"

	q, err := c.client.Channel.QueueDeclare(QueueEndOfDayReports, true, false, false, false, nil)
	if err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: declare queue failed: %w", op, err))
	}

	if err := c.client.Channel.QueueBind(q.Name, RoutingKeyWorkdayClosed, LogbookExchange, false, nil); err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: bind queue failed: %w", op, err))
	}

	return q, nil
}

// Consume blocks until ctx is cancelled, reconnecting on broker failures.
func (c *ReportConsumer) Consume(ctx context.Context) error {
	const op = "ReportConsumer.Consume"
	ctx = wrap.WithAction(ctx, "rabbitmq_consume_workday_closed")

	for {
		if ctx.Err() != nil {
			c.l.Debug(ctx, "workday closed consumer stopped by context")
			return nil
		}

		if err := c.client.EnsureConnection(ctx); err != nil {
			c.l.Error(ctx, "ensure connection failed", err, "op", op)
			time.Sleep(2 * time.Second)
			continue
		}

		if err := c.client.Channel.ExchangeDeclare(LogbookExchange, "topic", true, false, false, false, nil); err != nil {
			c.l.Error(ctx, "declare exchange failed", err, "op", op)
			time.Sleep(3 * time.Second)
			continue
		}

		q, err := c.declareAndBindQueue(ctx)
		if err != nil {
			c.l.Error(ctx, "declare queue failed", err, "op", op)
			time.Sleep(2 * time.Second)
			continue
		}

		msgs, err := c.client.Channel.Consume(q.Name, "", false, false, false, false, nil)
		if err != nil {
			c.l.Error(ctx, "consume failed", err, "op", op)
			time.Sleep(2 * time.Second)
			continue
		}

		c.l.Info(ctx, "start consuming workday closed events", "queue", q.Name)

	consumeLoop:
		for {
			select {
			case <-ctx.Done():
				c.l.Info(ctx, "workday closed consumer shutting down", "op", op)
				return nil

			case msg, ok := <-msgs:
				if !ok {
					c.l.Warn(ctx, "message channel closed, reconnecting...", "op", op)
					time.Sleep(2 * time.Second)
					continue consumeLoop
				}

				go c.handleMessage(ctx, msg)
			}
		}
	}
}

func (c *ReportConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	const op = "ReportConsumer.handleMessage"

	var event models.WorkdayClosedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.l.Error(ctx, "decode failed", err, "op", op)
		metrics.RecordRabbitMQConsume(QueueEndOfDayReports, err)
		_ = msg.Nack(false, false)
		return
	}

	ctx = wrap.WithRequestID(wrap.WithDayKey(ctx, event.DayKey.String()), msg.CorrelationId)

	if err := c.produceReport(ctx, event); err != nil {
		c.l.Error(ctx, "end of day report failed", err, "op", op)
		metrics.RecordRabbitMQConsume(QueueEndOfDayReports, err)

		c.notifier.Notify(models.Notice{
			Type:    types.NoticeReportFailed,
			Message: "end-of-day report could not be generated",
			Data:    map[string]any{"day_key": event.DayKey.String()},
			SentAt:  time.Now(),
		})

		_ = msg.Nack(false, false)
		return
	}

	metrics.RecordRabbitMQConsume(QueueEndOfDayReports, nil)
	if err := msg.Ack(false); err != nil {
		c.l.Warn(ctx, "ack failed", "err", err.Error(), "op", op)
	}
}

func (c *ReportConsumer) produceReport(ctx context.Context, event models.WorkdayClosedMessage) error {
	const op = "ReportConsumer.produceReport"

	rep, err := c.exporter.Export(ctx, models.ReportScope{
		Kind: models.ScopeSingleDay,
		Day:  event.DayKey,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rep.Empty() {
		c.l.Info(ctx, "no completed trips for closed day, skipping report file")
		c.notifier.Notify(models.Notice{
			Type:    types.NoticeReportReady,
			Message: "workday closed with no completed trips",
			Data:    map[string]any{"day_key": event.DayKey.String()},
			SentAt:  time.Now(),
		})
		return nil
	}

	if err := os.MkdirAll(c.exportDir, 0o755); err != nil {
		return fmt.Errorf("%s: create export dir: %w", op, err)
	}

	path := filepath.Join(c.exportDir, rep.Filename)
	if err := os.WriteFile(path, report.Render(rep), 0o644); err != nil {
		return fmt.Errorf("%s: write report: %w", op, err)
	}

	c.l.Info(ctx, "end of day report written", "path", path, "rows", len(rep.Rows))
	c.notifier.Notify(models.Notice{
		Type:    types.NoticeReportReady,
		Message: "end-of-day report is ready",
		Data: map[string]any{
			"day_key":  event.DayKey.String(),
			"filename": rep.Filename,
		},
		SentAt: time.Now(),
	})
	return nil
}
