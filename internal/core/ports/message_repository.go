package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// MessageRepository defines persistence operations for conversation messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error)
	MarkRead(ctx context.Context, conversationID, recipientID string) error
}
