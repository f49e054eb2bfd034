package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind discriminates authored text from system notices.
type MessageKind string

const (
	KindText   MessageKind = "text"
	KindSystem MessageKind = "system"
)

// Message represents a single immutable timeline entry.
// Content is trimmed and bounded (1 to 2000 runes) before construction;
// the store is the sole producer of ID and CreatedAt for composed messages.
type Message struct {
	ID        uuid.UUID
	ChannelID string
	UserID    string
	Content   string
	CreatedAt time.Time
	Kind      MessageKind
	EditedAt  *time.Time // only present in seed data, never set at runtime
	Lang      string     // detected language tag, informational
}
