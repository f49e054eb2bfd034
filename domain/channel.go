package domain

import "time"

// Visibility discriminates public channels from invitation-only ones.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Channel is a named conversation scope.
// Channels are loaded once per session and read-only afterwards;
// IDs are unique within the loaded snapshot.
type Channel struct {
	ID          string
	Name        string
	Description string
	Visibility  Visibility
	CreatedAt   time.Time
	Members     int
}
