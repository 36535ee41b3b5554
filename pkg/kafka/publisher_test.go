package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/smart-library/pkg/circuit_breaker"
	"github.com/Astemirdum/smart-library/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	ev := kafka.LoanEvent{
		Timestamp:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		EventType:   kafka.EventBorrow,
		ActivityUid: "a-1",
		UserUid:     "u-1",
		BookUid:     "b-1",
	}
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got kafka.LoanEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.BookUid != "b-1" || got.EventType != kafka.EventBorrow {
			return errors.New("unexpected event")
		}
		return nil
	})

	pub := kafka.NewPublisher(producer, circuit_breaker.New(10, time.Second, 0.5, 1), kafka.LoanEventsTopic)
	require.NoError(t, pub.Publish(context.Background(), ev))
	require.NoError(t, pub.Close())
}

func TestPublisher_OpensBreaker(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := kafka.NewPublisher(producer, circuit_breaker.New(2, time.Minute, 1, 1), kafka.LoanEventsTopic)
	ctx := context.Background()

	require.ErrorIs(t, pub.Publish(ctx, kafka.LoanEvent{BookUid: "b"}), sarama.ErrOutOfBrokers)
	require.ErrorIs(t, pub.Publish(ctx, kafka.LoanEvent{BookUid: "b"}), sarama.ErrOutOfBrokers)
	// the broker is not called again while the breaker is open
	require.ErrorIs(t, pub.Publish(ctx, kafka.LoanEvent{BookUid: "b"}), circuit_breaker.ErrOpenCB)
	require.NoError(t, producer.Close())
}

func TestNopPublisher(t *testing.T) {
	var pub kafka.NopPublisher
	require.NoError(t, pub.Publish(context.Background(), kafka.LoanEvent{}))
	require.NoError(t, pub.Close())
}

func TestDecodeLoanEvent(t *testing.T) {
	due := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	data, err := kafka.LoanEvent{EventType: kafka.EventReturn, BookUid: "b-1", DueDate: &due, Fine: 2}.Encode()
	require.NoError(t, err)

	ev, err := kafka.DecodeLoanEvent(data)
	require.NoError(t, err)
	require.Equal(t, kafka.EventReturn, ev.EventType)
	require.True(t, due.Equal(*ev.DueDate))
	require.InDelta(t, 2.0, ev.Fine, 1e-9)

	_, err = kafka.DecodeLoanEvent([]byte(`{"bookUid":"b-1"}`))
	require.Error(t, err)
	_, err = kafka.DecodeLoanEvent([]byte(`nope`))
	require.Error(t, err)
}
