package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// MessageInput is the DTO passed from the transport layer to the delivery
// pipeline. ConversationID keys the dispatcher shard, preserving in-order
// delivery per conversation.
type MessageInput struct {
	ConversationID string
	ProjectID      string
	SenderID       string
	RecipientID    string
	Body           string
}

// MessageService persists and delivers conversation messages.
type MessageService interface {
	Deliver(ctx context.Context, in MessageInput) error
	ListConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error)
	MarkRead(ctx context.Context, conversationID, recipientID string) error
}
