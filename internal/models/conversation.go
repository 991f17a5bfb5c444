// internal/models/conversation.go
package models

import "time"

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ConversationMessage is a single immutable turn in a conversation.
type ConversationMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
}

// Conversation is an append-only ordered sequence of messages.
// Insertion order is significant; messages are never mutated or removed.
type Conversation struct {
	Messages []ConversationMessage `json:"messages"`
}

// Append returns a new Conversation with the message added at the end.
func (c Conversation) Append(msg ConversationMessage) Conversation {
	out := make([]ConversationMessage, 0, len(c.Messages)+1)
	out = append(out, c.Messages...)
	out = append(out, msg)
	return Conversation{Messages: out}
}

// LastUserMessage returns the most recent user-authored message, if any.
func (c Conversation) LastUserMessage() (ConversationMessage, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i], true
		}
	}
	return ConversationMessage{}, false
}
