package queue

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/Shopify/sarama"

	"chat-delivery/internal/models"
	"chat-delivery/internal/observability"
)

// ErrQueueFull signals that the bounded enqueue buffer is saturated. Callers
// fall back to direct distribution instead of blocking.
var ErrQueueFull = errors.New("distribution queue is full")

// Enqueuer is the producer side of the distribution queue.
type Enqueuer interface {
	TryEnqueue(event models.DistributionEvent) error
}

// Producer publishes distribution events to the partitioned log. Events are
// keyed by conversation id, and broker acknowledgments feed back through
// onAck so the reconciliation sweep knows which messages made it out.
type Producer struct {
	producer sarama.AsyncProducer
	topic    string
	onAck    func(messageID string)
	done     chan struct{}
}

// NewProducer dials the brokers and starts the acknowledgment loop.
// bufferSize bounds the number of pending events; TryEnqueue never blocks.
func NewProducer(brokers []string, topic string, bufferSize int, onAck func(messageID string)) (*Producer, error) {
	ap, err := sarama.NewAsyncProducer(brokers, buildConfig(bufferSize))
	if err != nil {
		return nil, err
	}
	return newProducer(ap, topic, onAck), nil
}

func newProducer(ap sarama.AsyncProducer, topic string, onAck func(messageID string)) *Producer {
	p := &Producer{producer: ap, topic: topic, onAck: onAck, done: make(chan struct{})}
	go p.ackLoop()
	return p
}

func (p *Producer) ackLoop() {
	defer close(p.done)
	successes := p.producer.Successes()
	errs := p.producer.Errors()
	for successes != nil || errs != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			if messageID, isString := msg.Metadata.(string); isString && messageID != "" && p.onAck != nil {
				p.onAck(messageID)
			}
		case perr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			observability.IncQueuePublishError()
			log.Printf("distribution publish failed: %v", perr.Err)
		}
	}
}

// TryEnqueue offers an event to the log without blocking. A saturated buffer
// returns ErrQueueFull; the message itself is already durable, so the caller
// degrades to direct distribution rather than failing the sender.
func (p *Producer) TryEnqueue(event models.DistributionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:    p.topic,
		Key:      sarama.StringEncoder(event.ConversationID),
		Value:    sarama.ByteEncoder(payload),
		Metadata: event.MessageID,
	}

	select {
	case p.producer.Input() <- msg:
		observability.IncQueueEnqueued(event.Kind)
		return nil
	default:
		return ErrQueueFull
	}
}

// Close drains in-flight events and stops the acknowledgment loop.
func (p *Producer) Close() error {
	err := p.producer.Close()
	<-p.done
	return err
}
