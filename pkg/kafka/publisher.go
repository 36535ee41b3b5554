package kafka

import (
	"context"

	"github.com/Astemirdum/smart-library/pkg/circuit_breaker"
	"github.com/IBM/sarama"
)

type Publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		cb:       cb,
		topic:    topic,
	}
}

// Publish sends the event keyed by book so events of one book stay ordered.
func (p *Publisher) Publish(_ context.Context, ev LoanEvent) error {
	data, err := ev.Encode()
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.BookUid),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// NopPublisher is used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LoanEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
