// Package domain contains core concepts of the chat session.
// Entities are immutable once loaded and validated at the boundary.
// No storage, rendering, or timer logic should be added here.
package domain

// Presence is the availability state attached to a user.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
	PresenceAway    Presence = "away"
)

// User is an identity referenced by messages.
// Sourced entirely from the seed snapshot, never mutated afterwards.
type User struct {
	ID        string
	Name      string
	AvatarURL string
	Presence  Presence
	Contact   string // optional
}
