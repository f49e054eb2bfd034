// Package projection builds render-ready timelines from message lists.
// Handles day separators, visual compaction, and timestamp formatting.
// Everything here is pure; callers pass the reference instant explicitly.
package projection

import (
	"fmt"
	"time"

	"chat-deck/domain"
)

// CompactWindow is the maximum gap between two messages of the same author
// rendered as a single visual cluster.
const CompactWindow = 5 * time.Minute

// AutoScrollThreshold is how close to the bottom of the viewport the reader
// must be before new messages pull the view down.
const AutoScrollThreshold = 50.0

// Entry is either a message or a synthetic day marker; renderers switch on
// the concrete type.
type Entry interface {
	timelineEntry()
}

// DateSeparator marks a calendar-day boundary in a rendered timeline.
type DateSeparator struct {
	Date  time.Time // midnight of the day it opens, caller's location
	Label string
}

func (DateSeparator) timelineEntry() {}

// MessageEntry wraps a message together with its compaction decision.
type MessageEntry struct {
	Message domain.Message
	// Compact is true when the previous entry is a text message from the
	// same author sent less than CompactWindow earlier.
	Compact bool
}

func (MessageEntry) timelineEntry() {}

// BuildTimeline interleaves day separators into a chronological message
// list. A separator precedes the first message and every message whose
// calendar date differs from its predecessor in input order; clock time is
// ignored. The input is not reordered.
func BuildTimeline(messages []domain.Message, now time.Time) []Entry {
	if len(messages) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(messages)+1)
	var prev *domain.Message
	for i := range messages {
		msg := messages[i]
		if prev == nil || !sameDay(prev.CreatedAt, msg.CreatedAt) {
			day := midnight(msg.CreatedAt)
			entries = append(entries, DateSeparator{
				Date:  day,
				Label: DayLabel(day, now),
			})
		}
		entries = append(entries, MessageEntry{
			Message: msg,
			Compact: prev != nil && sameDay(prev.CreatedAt, msg.CreatedAt) && Compact(*prev, msg),
		})
		prev = &messages[i]
	}
	return entries
}

// Compact reports whether cur should be rendered clustered under prev:
// same author, both ordinary text, and sent within CompactWindow.
func Compact(prev, cur domain.Message) bool {
	if prev.UserID != cur.UserID {
		return false
	}
	if prev.Kind != domain.KindText || cur.Kind != domain.KindText {
		return false
	}
	gap := cur.CreatedAt.Sub(prev.CreatedAt)
	return gap >= 0 && gap < CompactWindow
}

// DayLabel renders a calendar day as "Today", "Yesterday", or the full
// weekday-month-day-year form, in that priority.
func DayLabel(day, now time.Time) string {
	today := midnight(now)
	switch {
	case sameDay(day, today):
		return "Today"
	case sameDay(day, today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Monday, January 2, 2006")
	}
}

// FormatTimestamp renders a message instant for display. Detailed mode uses
// a fixed hour:minute form; otherwise a coarse relative phrase. A zero
// instant renders as a literal marker instead of a bogus date.
func FormatTimestamp(t time.Time, detailed bool, now time.Time) string {
	if t.IsZero() {
		return "Invalid date"
	}
	if detailed {
		return t.Format("3:04 PM")
	}
	return relative(now.Sub(t))
}

func relative(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// ScrollState captures the scroll geometry of the message viewport.
type ScrollState struct {
	Offset         float64 // distance scrolled from the top
	ContentHeight  float64
	ViewportHeight float64
}

// ShouldAutoScroll reports whether an incoming message may pull the view to
// the bottom: only when enabled and the reader is already within
// AutoScrollThreshold of it.
func ShouldAutoScroll(view ScrollState, enabled bool) bool {
	return ShouldAutoScrollWithin(view, enabled, AutoScrollThreshold)
}

func ShouldAutoScrollWithin(view ScrollState, enabled bool, threshold float64) bool {
	if !enabled {
		return false
	}
	remaining := view.ContentHeight - view.Offset - view.ViewportHeight
	return remaining <= threshold
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
