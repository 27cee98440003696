package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const writeTimeout = 5 * time.Second

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// AsyncOrderPublisher hands events to a background loop through a bounded buffer.
// When the buffer is full the event is dropped and a warning is logged.
type AsyncOrderPublisher struct {
	writer MessageWriter
	events chan domain.OrderEvent
	logger logging.Logger
}

func NewAsyncOrderPublisher(writer MessageWriter, bufferSize int, logger logging.Logger) *AsyncOrderPublisher {
	return &AsyncOrderPublisher{
		writer: writer,
		events: make(chan domain.OrderEvent, bufferSize),
		logger: logger,
	}
}

func (p *AsyncOrderPublisher) Publish(_ context.Context, event domain.OrderEvent) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("order event buffer is full, dropping event",
			"event_id", event.EventId, "type", string(event.Type), "order_id", event.OrderId)
	}
}

// Run writes buffered events until ctx is done, then closes the writer.
func (p *AsyncOrderPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if err := p.writer.Close(); err != nil {
				return fmt.Errorf("failed to close kafka writer: %w", err)
			}
			return nil
		case event := <-p.events:
			if err := p.write(ctx, event); err != nil {
				p.logger.Error("failed to publish order event",
					"event_id", event.EventId, "order_id", event.OrderId, "error", err)
			}
		}
	}
}

func (p *AsyncOrderPublisher) write(ctx context.Context, event domain.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderId, 10)),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// NopOrderPublisher is used when no brokers are configured.
type NopOrderPublisher struct{}

func (NopOrderPublisher) Publish(context.Context, domain.OrderEvent) {}
