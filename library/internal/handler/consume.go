package handler

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

const retryBackoff = time.Second

type recordLoanEvent func(ctx context.Context, ev kafka.LoanEvent) error

// Consumer stores the loan event feed into the audit table.
type Consumer struct {
	record recordLoanEvent
	log    *zap.Logger
	ready  chan bool
}

func NewConsumer(record recordLoanEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		record: record,
		log:    log.Named("consumer"),
		ready:  make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			ev, err := kafka.DecodeLoanEvent(message.Value)
			if err != nil {
				consumer.log.Error("unmarshal loan event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.record(session.Context(), ev); err != nil {
				if errors.Is(err, errs.ErrValidation) {
					consumer.log.Error("skip invalid loan event", zap.Error(err), zap.String("activity", ev.ActivityUid))
					session.MarkMessage(message, "")
					continue
				}
				// The session ends here so no later offset of this partition is
				// committed; the next session resumes from the failed message.
				consumer.log.Error("record loan event", zap.Error(err), zap.String("activity", ev.ActivityUid))
				select {
				case <-time.After(retryBackoff):
				case <-session.Context().Done():
					return nil
				}
				return errors.Wrap(err, "record loan event")
			}

			consumer.log.Debug("message claimed",
				zap.String("type", string(ev.EventType)),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
