package grpc

import (
	"context"
	"errors"

	authpb "chat-delivery/pb/auth"
)

// AuthClient wraps the auth-service gRPC client.
type AuthClient struct {
	client authpb.AuthServiceClient
}

// NewAuthClient constructs the wrapper.
func NewAuthClient(client authpb.AuthServiceClient) *AuthClient {
	return &AuthClient{client: client}
}

// ValidateToken verifies the credential and returns the authenticated user id.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (string, error) {
	resp, err := a.client.ValidateToken(ctx, &authpb.ValidateTokenRequest{Token: token})
	if err != nil {
		return "", err
	}
	if !resp.Valid || resp.UserId == "" {
		return "", errors.New("invalid token")
	}
	return resp.UserId, nil
}
