// Package audit publishes a record of every successful article mutation to
// Kafka. It is optional infrastructure: when no brokers are configured the
// nil producer turns every publish into a no-op, and publish failures are
// logged without ever failing the operation that triggered them.
package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"joomlamcp/pkg/logger"
)

// Event describes one completed mutation against the remote Joomla instance.
type Event struct {
	Action    string    `json:"action"`
	ArticleID int64     `json:"article_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewProducer builds a producer writing to topic on the given brokers.
// Messages are keyed by article id so per-article ordering is preserved.
func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "message", msg, "args", args)
		}),
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

// Publish sends one audit event. Safe on a nil producer; never returns an
// error to the caller - audit is best effort.
func (p *Producer) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal audit event", "action", event.Action, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ArticleID, 10)),
		Value: value,
		Time:  event.At,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish audit event",
			"action", event.Action,
			"article_id", event.ArticleID,
			"error", err,
		)
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
