package notifications

import (
	"context"
	"fmt"
	"time"

	"skybook/internal/bookings"
	"skybook/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer publishes booking lifecycle events to Kafka. Callers treat
// publishing as best effort; a broker outage never fails a booking or a
// cancellation.
type Producer interface {
	PublishTicketIssued(ctx context.Context, payment *bookings.Payment, tickets []bookings.Ticket) error
	PublishTicketCancelled(ctx context.Context, ticket *bookings.Ticket, refund float64) error
	PublishFlightCancelled(ctx context.Context, flightID uuid.UUID, ticketsCancelled, ticketsFailed int) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	cfg      config.KafkaConfig
}

// NewProducer creates a Kafka-backed producer, or a no-op producer when
// Kafka is disabled in the configuration.
func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	if !cfg.Enabled {
		return &noopProducer{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMillis) * time.Millisecond
	// Hash on the entity ID so events for one user/flight stay ordered.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, cfg: cfg}, nil
}

func (p *kafkaProducer) PublishTicketIssued(ctx context.Context, payment *bookings.Payment, tickets []bookings.Ticket) error {
	seatNumbers := make([]string, 0, len(tickets))
	var flightID uuid.UUID
	for _, t := range tickets {
		seatNumbers = append(seatNumbers, t.SeatNumber)
		flightID = t.FlightID
	}

	event := newEvent(EventTicketIssued, TicketIssuedPayload{
		PaymentID:   payment.ID,
		UserID:      payment.UserID,
		FlightID:    flightID,
		Method:      string(payment.Method),
		TotalAmount: payment.TotalAmount,
		SeatNumbers: seatNumbers,
	})
	return p.send(p.cfg.BookingTopic, payment.UserID.String(), event)
}

func (p *kafkaProducer) PublishTicketCancelled(ctx context.Context, ticket *bookings.Ticket, refund float64) error {
	event := newEvent(EventTicketCancelled, TicketCancelledPayload{
		TicketID:     ticket.ID,
		UserID:       ticket.UserID,
		FlightID:     ticket.FlightID,
		SeatNumber:   ticket.SeatNumber,
		RefundAmount: refund,
	})
	return p.send(p.cfg.TicketTopic, ticket.UserID.String(), event)
}

func (p *kafkaProducer) PublishFlightCancelled(ctx context.Context, flightID uuid.UUID, ticketsCancelled, ticketsFailed int) error {
	event := newEvent(EventFlightCancelled, FlightCancelledPayload{
		FlightID:         flightID,
		TicketsCancelled: ticketsCancelled,
		TicketsFailed:    ticketsFailed,
	})
	return p.send(p.cfg.CascadeTopic, flightID.String(), event)
}

func (p *kafkaProducer) send(topic, key string, event *Event) error {
	value, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(value),
		Timestamp: event.OccurredAt,
	}
	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

// noopProducer swallows all events; used when Kafka is disabled.
type noopProducer struct{}

func (noopProducer) PublishTicketIssued(context.Context, *bookings.Payment, []bookings.Ticket) error {
	return nil
}

func (noopProducer) PublishTicketCancelled(context.Context, *bookings.Ticket, float64) error {
	return nil
}

func (noopProducer) PublishFlightCancelled(context.Context, uuid.UUID, int, int) error {
	return nil
}

func (noopProducer) Close() error { return nil }
