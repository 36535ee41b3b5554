package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/handler"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

type session struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *session) Context() context.Context { return s.ctx }

func (s *session) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	s.marked = append(s.marked, msg.Offset)
	s.mu.Unlock()
}

type claim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *claim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func encodeEvent(t *testing.T, activity string) []byte {
	t.Helper()
	b, err := json.Marshal(kafka.LoanEvent{
		Timestamp:   time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		EventType:   kafka.EventBorrow,
		ActivityUid: activity,
		UserUid:     "u1",
		BookUid:     "b1",
	})
	require.NoError(t, err)
	return b
}

func TestConsumer_ConsumeClaim(t *testing.T) {
	var recorded []kafka.LoanEvent
	record := func(_ context.Context, ev kafka.LoanEvent) error {
		if ev.ActivityUid == "not-a-uuid" {
			return pkgerrors.Wrap(errs.ErrValidation, "activityUid")
		}
		recorded = append(recorded, ev)
		return nil
	}
	consumer := handler.NewConsumer(record, zap.NewNop())

	sess := &session{ctx: context.Background()}
	require.NoError(t, consumer.Setup(sess))
	<-consumer.Ready()
	require.NoError(t, consumer.Setup(sess))

	cl := &claim{messages: make(chan *sarama.ConsumerMessage, 4)}
	cl.messages <- &sarama.ConsumerMessage{Offset: 1, Value: encodeEvent(t, "a1")}
	cl.messages <- &sarama.ConsumerMessage{Offset: 2, Value: []byte("{not json")}
	cl.messages <- &sarama.ConsumerMessage{Offset: 3, Value: encodeEvent(t, "not-a-uuid")}
	cl.messages <- &sarama.ConsumerMessage{Offset: 4, Value: encodeEvent(t, "a2")}
	close(cl.messages)

	require.NoError(t, consumer.ConsumeClaim(sess, cl))

	require.Len(t, recorded, 2)
	require.Equal(t, "a1", recorded[0].ActivityUid)
	require.Equal(t, "a2", recorded[1].ActivityUid)
	require.True(t, recorded[0].Timestamp.Equal(time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)))
	// undecodable and invalid events are skipped
	require.Equal(t, []int64{1, 2, 3, 4}, sess.marked)
}

func TestConsumer_FailedRecordStopsBeforeLaterOffsets(t *testing.T) {
	var recorded []string
	record := func(_ context.Context, ev kafka.LoanEvent) error {
		if ev.ActivityUid == "a2" {
			return errors.New("db down")
		}
		recorded = append(recorded, ev.ActivityUid)
		return nil
	}
	consumer := handler.NewConsumer(record, zap.NewNop())

	cl := &claim{messages: make(chan *sarama.ConsumerMessage, 3)}
	cl.messages <- &sarama.ConsumerMessage{Offset: 1, Value: encodeEvent(t, "a1")}
	cl.messages <- &sarama.ConsumerMessage{Offset: 2, Value: encodeEvent(t, "a2")}
	cl.messages <- &sarama.ConsumerMessage{Offset: 3, Value: encodeEvent(t, "a3")}
	close(cl.messages)

	sess := &session{ctx: context.Background()}
	err := consumer.ConsumeClaim(sess, cl)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")

	require.Equal(t, []string{"a1"}, recorded)
	require.Equal(t, []int64{1}, sess.marked)
	// the message after the failure is left for the next session
	require.Len(t, cl.messages, 1)
}

func TestConsumer_StopsOnSessionEnd(t *testing.T) {
	consumer := handler.NewConsumer(func(context.Context, kafka.LoanEvent) error { return nil }, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cl := &claim{messages: make(chan *sarama.ConsumerMessage)}
	require.NoError(t, consumer.ConsumeClaim(&session{ctx: ctx}, cl))
}
