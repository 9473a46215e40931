package grpc

import (
	"context"

	convpb "chat-delivery/pb/conversation"
)

// ConversationClient wraps the conversation-service gRPC client. Membership
// and permission rules live entirely in that service; this process only asks.
type ConversationClient struct {
	client convpb.ConversationServiceClient
}

// NewConversationClient constructs the wrapper.
func NewConversationClient(client convpb.ConversationServiceClient) *ConversationClient {
	return &ConversationClient{client: client}
}

// HasAccess reports whether the user is a participant of the conversation.
func (c *ConversationClient) HasAccess(ctx context.Context, userID, conversationID string) (bool, error) {
	resp, err := c.client.HasAccess(ctx, &convpb.HasAccessRequest{UserId: userID, ConversationId: conversationID})
	if err != nil {
		return false, err
	}
	return resp.GetHasAccess(), nil
}

// Participants returns the conversation's current participant set.
func (c *ConversationClient) Participants(ctx context.Context, conversationID string) ([]string, error) {
	resp, err := c.client.Participants(ctx, &convpb.ParticipantsRequest{ConversationId: conversationID})
	if err != nil {
		return nil, err
	}
	return resp.GetUserIds(), nil
}
