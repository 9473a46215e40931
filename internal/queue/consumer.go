package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Shopify/sarama"

	"chat-delivery/internal/models"
)

// EventHandler processes one distribution event. Handlers must be idempotent:
// a consumer rebalance can replay events.
type EventHandler func(ctx context.Context, event models.DistributionEvent) error

// StartConsumer joins a consumer group and reads the distribution topic until
// ctx is cancelled. Every process passes its own group id, so each process
// reads the full log (broadcast) and independently decides which sessions it
// owns.
func StartConsumer(ctx context.Context, brokers []string, groupID, topic string, handler EventHandler) error {
	group, err := sarama.NewConsumerGroup(brokers, groupID, buildConfig(256))
	if err != nil {
		return err
	}

	go func() {
		for err := range group.Errors() {
			log.Printf("distribution consumer error: %v", err)
		}
	}()

	go func() {
		defer group.Close()
		h := &groupHandler{handler: handler}
		for {
			if err := group.Consume(ctx, []string{topic}, h); err != nil {
				log.Printf("distribution consume error: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return nil
}

type groupHandler struct {
	handler EventHandler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var event models.DistributionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("malformed distribution event offset=%d: %v", msg.Offset, err)
			session.MarkMessage(msg, "")
			continue
		}

		if err := h.handler(session.Context(), event); err != nil {
			log.Printf("distribution handler error kind=%s message_id=%s: %v", event.Kind, event.MessageID, err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
