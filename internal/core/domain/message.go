package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a single entry in a conversation thread between a resident and
// the project team. Threads are keyed by conversation ID; delivery order
// within a conversation is guaranteed by the dispatcher.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	ProjectID      string    `json:"project_id,omitempty" bson:"project_id,omitempty"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	RecipientID    string    `json:"recipient_id,omitempty" bson:"recipient_id,omitempty"`
	Body           string    `json:"body" bson:"body"`
	SentAt         time.Time `json:"sent_at" bson:"sent_at"`
	Read           bool      `json:"read" bson:"read"`
}
