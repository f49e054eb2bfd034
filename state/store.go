// Package state holds the single source of truth for a chat session.
// All mutation goes through Store actions, all reads through selectors;
// no action panics or returns an error to its caller. Validation failures
// surface through the error field, persistence failures are absorbed by
// the settings repository.
package state

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/abadojack/whatlanggo"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-deck/domain"
	"chat-deck/moderation"
	"chat-deck/repositories"
	"chat-deck/search"
	"chat-deck/validation"
)

// InvalidContentMessage is the user-visible error recorded when a compose
// submission fails content validation.
const InvalidContentMessage = "Message must be between 1 and 2000 characters."

// Store is the session state container. It owns channels, per-channel
// message lists, the active channel, and UI preferences, and bridges to
// the settings repository for the durable subset. Actions are serialized
// by an internal mutex; the UI event loop is the only expected caller, the
// mutex just keeps that assumption from becoming load-bearing.
type Store struct {
	mu       sync.Mutex
	log      *slog.Logger
	clock    clock.Clock
	settings repositories.ISettingsRepository

	moderator *moderation.Moderator
	index     repositories.IMessageIndex

	channels      []domain.Channel
	messages      map[string][]domain.Message
	activeChannel string
	theme         domain.Theme
	sidebarOpen   bool
	searchQuery   string
	loading       bool
	lastError     string
}

// Option configures optional collaborators at construction time.
type Option func(*Store)

// WithClock substitutes the wall clock, letting tests control timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithModerator censors composed content before it is appended.
func WithModerator(m *moderation.Moderator) Option {
	return func(s *Store) { s.moderator = m }
}

// WithIndex maintains a full-text index over all loaded and composed
// messages, backing SearchMessages.
func WithIndex(i repositories.IMessageIndex) Option {
	return func(s *Store) { s.index = i }
}

// NewStore builds a store around the injected settings repository. The
// session starts loading with documented defaults until Initialize and
// LoadChannels have run.
func NewStore(settings repositories.ISettingsRepository, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		log:         log,
		clock:       clock.New(),
		settings:    settings,
		messages:    make(map[string][]domain.Message),
		theme:       domain.DefaultTheme,
		sidebarOpen: true,
		loading:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted theme and UI settings. The repository
// already fails open, so any storage trouble resolves to the defaults
// (light theme, sidebar visible) without surfacing here.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.settings.GetTheme()
	if open := s.settings.GetSettings().SidebarOpen; open != nil {
		s.sidebarOpen = *open
	}
}

// LoadChannels replaces the channel and message collections wholesale. The
// active channel becomes the persisted last-active one when it is among the
// loaded channels, else the first loaded channel, else none. Clears the
// loading flag and rebuilds the message index when one is attached.
func (s *Store) LoadChannels(channels []domain.Channel, messagesByChannel map[string][]domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.channels = channels
	s.messages = make(map[string][]domain.Message, len(messagesByChannel))
	for id, msgs := range messagesByChannel {
		s.messages[id] = append([]domain.Message(nil), msgs...)
	}

	s.activeChannel = ""
	last := s.settings.GetSettings().LastActiveChannel
	if last != nil && lo.ContainsBy(channels, func(c domain.Channel) bool { return c.ID == *last }) {
		s.activeChannel = *last
	} else if len(channels) > 0 {
		s.activeChannel = channels[0].ID
	}

	s.loading = false

	if s.index != nil {
		if err := s.index.Rebuild(s.allMessagesLocked()); err != nil {
			s.log.Warn("failed to rebuild message index", "error", err)
		}
	}
}

// SetActiveChannel records id unconditionally and persists it as the
// last-active channel. Existence against the loaded collection is the
// router's responsibility.
func (s *Store) SetActiveChannel(id string) {
	s.mu.Lock()
	s.activeChannel = id
	s.mu.Unlock()
	s.settings.SetSettings(domain.UISettings{LastActiveChannel: &id})
}

// AddMessage validates and appends a composed message. On rejection the
// error field is set and no message state changes; on success the trimmed
// (and, when a moderator is attached, censored) content is appended with a
// fresh identifier and the current instant, and any prior error clears.
func (s *Store) AddMessage(cmd domain.PostMessageCommand) {
	content, err := validation.Content(cmd.Content)
	if err != nil {
		s.mu.Lock()
		s.lastError = InvalidContentMessage
		s.mu.Unlock()
		s.log.Debug("rejected message", "channel", cmd.ChannelID, "error", err)
		return
	}

	if s.moderator != nil {
		content = s.moderator.Censor(content)
	}

	kind := cmd.Kind
	if kind == "" {
		kind = domain.KindText
	}

	msg := domain.Message{
		ID:        uuid.New(),
		ChannelID: cmd.ChannelID,
		UserID:    cmd.UserID,
		Content:   content,
		CreatedAt: s.clock.Now().UTC(),
		Kind:      kind,
		Lang:      detectLang(content),
	}

	s.mu.Lock()
	s.messages[cmd.ChannelID] = append(s.messages[cmd.ChannelID], msg)
	s.lastError = ""
	s.mu.Unlock()

	if s.index != nil {
		if err := s.index.Index(msg); err != nil {
			s.log.Warn("failed to index message", "id", msg.ID, "error", err)
		}
	}
}

// ToggleTheme cycles light -> dark -> system -> light and persists the new
// value. The in-memory transition happens even when the write fails; the
// repository absorbs and logs that.
func (s *Store) ToggleTheme() {
	s.mu.Lock()
	s.theme = s.theme.Next()
	theme := s.theme
	s.mu.Unlock()
	s.settings.SetTheme(theme)
}

// ToggleSidebar flips the visibility flag and merge-persists it, leaving
// other settings fields untouched.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	open := s.sidebarOpen
	s.mu.Unlock()
	s.settings.SetSettings(domain.UISettings{SidebarOpen: &open})
}

// SetSearchQuery replaces the query verbatim; the empty string means no
// filter.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// ClearError resets the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// ChannelMessages returns the channel's messages in insertion order, or an
// empty slice for an unknown channel. The returned slice is a copy.
func (s *Store) ChannelMessages(channelID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages[channelID]...)
}

// FilteredChannels returns all channels when the query is blank, otherwise
// the ones whose name or description contains it case-insensitively,
// preserving original order.
func (s *Store) FilteredChannels() []domain.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(s.searchQuery))
	if query == "" {
		return append([]domain.Channel(nil), s.channels...)
	}
	return lo.Filter(s.channels, func(c domain.Channel, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Description), query)
	})
}

// SearchMessages finds messages matching terms across all channels
// (channelID narrows to one). With an index attached it delegates to the
// engine; otherwise it ranks an in-memory scan. Failures log and yield no
// results rather than erroring.
func (s *Store) SearchMessages(ctx context.Context, terms, channelID string, limit int) []domain.Message {
	if strings.TrimSpace(terms) == "" {
		return nil
	}

	s.mu.Lock()
	all := s.allMessagesLocked()
	s.mu.Unlock()

	if channelID != "" {
		all = lo.Filter(all, func(m domain.Message, _ int) bool { return m.ChannelID == channelID })
	}

	if s.index == nil {
		ranked := search.Rank(all, terms, func(m domain.Message) string { return m.Content }, limit)
		return lo.Map(ranked, func(r search.Result[domain.Message], _ int) domain.Message { return r.Item })
	}

	hits, err := s.index.Search(ctx, terms, channelID, limit)
	if err != nil {
		s.log.Warn("message search failed", "terms", terms, "error", err)
		return nil
	}
	byID := lo.KeyBy(all, func(m domain.Message) string { return m.ID.String() })
	var results []domain.Message
	for _, hit := range hits {
		if msg, ok := byID[hit.MessageID]; ok {
			results = append(results, msg)
		}
	}
	return results
}

// ActiveChannel returns the current channel ID, empty when none is set.
func (s *Store) ActiveChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChannel
}

func (s *Store) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the user-visible error text, empty when none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Channels returns the loaded channels in order.
func (s *Store) Channels() []domain.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Channel(nil), s.channels...)
}

func (s *Store) allMessagesLocked() []domain.Message {
	var all []domain.Message
	for _, c := range s.channels {
		all = append(all, s.messages[c.ID]...)
	}
	return all
}

// detectLang tags content with its probable ISO 639-3 code; low-confidence
// guesses are dropped.
func detectLang(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return whatlanggo.LangToString(info.Lang)
}
