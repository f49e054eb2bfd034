package main

import (
	"fmt"
	"strings"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/deck"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	// Comma-separated list of words censored in composed messages.
	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
	// Whether the host prefers a dark scheme; resolves the "system" theme
	// at render time.
	SystemDark bool `env:"SYSTEM_DARK,default=false"`
	// Detailed timestamps use a fixed clock format instead of "x ago".
	DetailedTimestamps bool `env:"DETAILED_TIMESTAMPS,default=false"`
}

func (c Config) CensoredWordList() []string {
	if strings.TrimSpace(c.CensoredWords) == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Split(c.CensoredWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func (c Config) ReplacementRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}
