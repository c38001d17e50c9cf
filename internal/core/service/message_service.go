package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

const defaultConversationLimit = 50

type MessageService struct {
	repo ports.MessageRepository
	log  zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, log: log}
}

// Deliver persists one message. Called from the dispatcher workers, which
// guarantee per-conversation ordering.
func (s *MessageService) Deliver(ctx context.Context, in ports.MessageInput) error {
	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: in.ConversationID,
		ProjectID:      in.ProjectID,
		SenderID:       in.SenderID,
		RecipientID:    in.RecipientID,
		Body:           in.Body,
		SentAt:         time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("conversation_id", in.ConversationID).Msg("message delivery failed")
		return err
	}

	s.log.Debug().
		Str("conversation_id", in.ConversationID).
		Str("message_id", msg.ID).
		Msg("message delivered")

	return nil
}

func (s *MessageService) ListConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error) {
	if limit < 1 || limit > maxPageLimit {
		limit = defaultConversationLimit
	}
	return s.repo.ListByConversation(ctx, conversationID, limit)
}

func (s *MessageService) MarkRead(ctx context.Context, conversationID, recipientID string) error {
	return s.repo.MarkRead(ctx, conversationID, recipientID)
}
