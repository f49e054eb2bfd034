// Package mockdata provides the static session snapshot: a fixed set of
// users and channels with a few days of message history, enough to exercise
// day separators, compaction, search, and presence rendering.
package mockdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-deck/domain"
)

// Users returns the seeded identities, keyed by ID.
func Users() map[string]domain.User {
	users := []domain.User{
		{ID: "u1", Name: "Alice Moreau", AvatarURL: "https://avatars.example/u1.png", Presence: domain.PresenceOnline, Contact: "alice@example.com"},
		{ID: "u2", Name: "Bob Keller", AvatarURL: "https://avatars.example/u2.png", Presence: domain.PresenceAway},
		{ID: "u3", Name: "Clara Osei", AvatarURL: "https://avatars.example/u3.png", Presence: domain.PresenceOnline, Contact: "clara@example.com"},
		{ID: "u4", Name: "Deniz Aydin", AvatarURL: "https://avatars.example/u4.png", Presence: domain.PresenceOffline},
	}
	return lo.KeyBy(users, func(u domain.User) string { return u.ID })
}

// Channels returns the seeded conversation scopes, ordered for display.
func Channels(now time.Time) []domain.Channel {
	return []domain.Channel{
		{
			ID:          "general",
			Name:        "General",
			Description: "Company-wide announcements and chatter",
			Visibility:  domain.VisibilityPublic,
			CreatedAt:   now.AddDate(0, -6, 0),
			Members:     42,
		},
		{
			ID:          "tech",
			Name:        "Tech",
			Description: "Engineering discussions and deploy notices",
			Visibility:  domain.VisibilityPublic,
			CreatedAt:   now.AddDate(0, -5, 0),
			Members:     17,
		},
		{
			ID:          "design",
			Name:        "Design",
			Description: "Mockups, reviews, and pixel debates",
			Visibility:  domain.VisibilityPrivate,
			CreatedAt:   now.AddDate(0, -2, 0),
			Members:     6,
		},
	}
}

// Messages returns per-channel histories spanning three calendar days so a
// rendered timeline shows both labels and a full date.
func Messages(now time.Time) map[string][]domain.Message {
	twoDaysAgo := now.AddDate(0, 0, -2).Truncate(time.Hour)
	yesterday := now.AddDate(0, 0, -1).Truncate(time.Hour)
	today := now.Add(-2 * time.Hour)

	return map[string][]domain.Message{
		"general": {
			seed("general", "u1", "Welcome to the new workspace, everyone!", twoDaysAgo),
			seed("general", "u2", "Glad to be here.", twoDaysAgo.Add(3*time.Minute)),
			system("general", "u3 joined the channel", twoDaysAgo.Add(10*time.Minute)),
			seed("general", "u3", "Morning! Standup moved to 9:30 today.", yesterday),
			seed("general", "u1", "Thanks for the heads up.", yesterday.Add(2*time.Minute)),
			seed("general", "u1", "Agenda is in the usual doc.", yesterday.Add(4*time.Minute)),
			seed("general", "u2", "Reminder: quarterly review slides due Friday.", today),
		},
		"tech": {
			seed("tech", "u3", "Deploy of 2.4.1 starts in ten minutes.", yesterday.Add(6*time.Hour)),
			seed("tech", "u3", "Deploy finished, all checks green.", yesterday.Add(7*time.Hour)),
			seed("tech", "u2", "Seeing elevated latency on the search endpoint, anyone else?", today.Add(30*time.Minute)),
			seed("tech", "u1", "Looking into it, probably the new index warmup.", today.Add(33*time.Minute)),
		},
		"design": {
			seed("design", "u4", "Uploaded the dark theme mockups for review.", twoDaysAgo.Add(5*time.Hour)),
			seed("design", "u1", "The contrast on the sidebar looks much better now.", yesterday.Add(time.Hour)),
		},
	}
}

func seed(channel, user, content string, at time.Time) domain.Message {
	return domain.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		UserID:    user,
		Content:   content,
		CreatedAt: at.UTC(),
		Kind:      domain.KindText,
	}
}

func system(channel, content string, at time.Time) domain.Message {
	return domain.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		UserID:    "system",
		Content:   content,
		CreatedAt: at.UTC(),
		Kind:      domain.KindSystem,
	}
}
