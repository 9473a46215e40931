package queue

import (
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/require"

	"chat-delivery/internal/models"
)

type fakeAsyncProducer struct {
	input     chan *sarama.ProducerMessage
	successes chan *sarama.ProducerMessage
	errors    chan *sarama.ProducerError
}

func newFakeAsyncProducer(buffer int) *fakeAsyncProducer {
	return &fakeAsyncProducer{
		input:     make(chan *sarama.ProducerMessage, buffer),
		successes: make(chan *sarama.ProducerMessage, buffer),
		errors:    make(chan *sarama.ProducerError, buffer),
	}
}

func (f *fakeAsyncProducer) AsyncClose() {}
func (f *fakeAsyncProducer) Close() error {
	close(f.successes)
	close(f.errors)
	return nil
}
func (f *fakeAsyncProducer) Input() chan<- *sarama.ProducerMessage     { return f.input }
func (f *fakeAsyncProducer) Successes() <-chan *sarama.ProducerMessage { return f.successes }
func (f *fakeAsyncProducer) Errors() <-chan *sarama.ProducerError      { return f.errors }

func TestTryEnqueueKeysByConversation(t *testing.T) {
	fake := newFakeAsyncProducer(4)
	p := newProducer(fake, "chat.distribution", nil)
	defer p.Close()

	event := models.MessageEvent(models.Message{
		ID:             "m1",
		ConversationID: "c42",
		SenderID:       "alice",
		Content:        "hi",
		CreatedAt:      time.Now(),
	})
	require.NoError(t, p.TryEnqueue(event))

	msg := <-fake.input
	key, err := msg.Key.Encode()
	require.NoError(t, err)
	require.Equal(t, "c42", string(key))
	require.Equal(t, "chat.distribution", msg.Topic)
	require.Equal(t, "m1", msg.Metadata)
}

func TestTryEnqueueSaturationReturnsErrQueueFull(t *testing.T) {
	fake := newFakeAsyncProducer(1)
	p := newProducer(fake, "chat.distribution", nil)
	defer p.Close()

	first := models.DistributionEvent{Kind: models.EventMessage, MessageID: "m1", ConversationID: "c1"}
	second := models.DistributionEvent{Kind: models.EventMessage, MessageID: "m2", ConversationID: "c1"}

	require.NoError(t, p.TryEnqueue(first))
	require.ErrorIs(t, p.TryEnqueue(second), ErrQueueFull)
}

func TestAckLoopForwardsMessageID(t *testing.T) {
	fake := newFakeAsyncProducer(4)

	acked := make(chan string, 1)
	p := newProducer(fake, "chat.distribution", func(messageID string) {
		acked <- messageID
	})

	fake.successes <- &sarama.ProducerMessage{Metadata: "m7"}

	select {
	case id := <-acked:
		require.Equal(t, "m7", id)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ack")
	}
	p.Close()
}
