// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
	"github.com/tinoosan/bank/internal/events"
)

// Publisher writes TransactionPosted events keyed by transaction id, so all
// events of a transaction land on one partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns an asynchronous publisher. Delivery errors surface
// through logger since Publish returns before the broker acknowledges.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Warn("kafka delivery failed", "topic", topic, "messages", len(messages), "err", err)
				}
			},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, ev events.TransactionPosted) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages.
func (p *Publisher) Close() error { return p.writer.Close() }

func message(ev events.TransactionPosted) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.Itoa(ev.TransactionID)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("transaction.posted")},
			{Key: "event_id", Value: []byte(ev.EventID.String())},
		},
	}, nil
}

var _ events.Publisher = (*Publisher)(nil)
