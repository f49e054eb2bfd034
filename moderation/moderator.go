// Package moderation censors configured words in composed messages.
// Matching is case-insensitive and the replacement preserves rune count,
// so downstream length checks and layout stay valid.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"chat-deck/errors"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
	log         *slog.Logger
}

// NewModerator builds an Aho-Corasick automaton over the lowercased word
// list. An empty list is a configuration mistake, not a silent no-op.
func NewModerator(words []string, replacement rune, log *slog.Logger) (*Moderator, error) {
	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = lowerRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, replacement: replacement, log: log}, nil
}

// Censor replaces every occurrence of a configured word with the
// replacement rune, one per original rune.
func (m *Moderator) Censor(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}

	spans := m.matcher.MultiPatternSearch(lowerRunes(runes), false)
	if len(spans) == 0 {
		return text
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(runes) {
			continue
		}
		for i := start; i < end; i++ {
			runes[i] = m.replacement
		}
	}

	m.log.Debug("censored message content", "matches", len(spans))
	return string(runes)
}

// lowerRunes folds case rune by rune, keeping indices aligned with the
// original text.
func lowerRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = unicode.ToLower(r)
	}
	return out
}
