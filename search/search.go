// Package search holds pure text filtering, highlighting, and relevance
// scoring, independent of the state container that uses them.
package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Markers wrapping every match in highlighted output. Renderers may replace
// them with styling of their own through HighlightWith.
const (
	MarkOpen  = "«"
	MarkClose = "»"
)

// WholeWordBonus and PerMatchBonus are the additive components of Score on
// top of the positional bonus.
const (
	PerMatchBonus  = 5.0
	WholeWordBonus = 5.0
	positionalMax  = 10.0
)

// Highlight wraps every case-insensitive occurrence of term inside text
// with the default markers. Empty term or text returns text unchanged.
func Highlight(text, term string) string {
	return HighlightWith(text, term, func(match string) string {
		return MarkOpen + match + MarkClose
	})
}

// HighlightWith is Highlight with a caller-supplied wrapper, so a terminal
// renderer can substitute color codes for the plain markers. Metacharacters
// in term are escaped first; arbitrary user input searches literally.
func HighlightWith(text, term string, wrap func(string) string) string {
	if text == "" || term == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, wrap)
}

// Score rates how well text matches term: a positional bonus of up to 10
// (full at index 0, decaying linearly to 0 at the end of the text), plus 5
// per occurrence, plus 5 when the term matches as a whole word. No match
// scores 0.
func Score(text, term string) float64 {
	if text == "" || term == "" {
		return 0
	}
	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)

	first := strings.Index(lowerText, lowerTerm)
	if first < 0 {
		return 0
	}

	score := positionalMax * (1 - float64(first)/float64(len(lowerText)))
	score += PerMatchBonus * float64(strings.Count(lowerText, lowerTerm))

	wordRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err == nil && wordRe.MatchString(text) {
		score += WholeWordBonus
	}
	return score
}

// Result pairs a ranked item with its score.
type Result[T any] struct {
	Item  T
	Score float64
}

// Rank scores every item whose extracted text matches term and returns them
// in descending score order, ties keeping encounter order, capped at max
// results (max <= 0 means no cap).
func Rank[T any](items []T, term string, extract func(T) string, max int) []Result[T] {
	var results []Result[T]
	for _, item := range items {
		if s := Score(extract(item), term); s > 0 {
			results = append(results, Result[T]{Item: item, Score: s})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if max > 0 && len(results) > max {
		results = results[:max]
	}
	return results
}

// Query represents structured search input parsed from a raw command line.
// It decouples what the user typed from what the index receives.
type Query struct {
	RawInput string
	Terms    string
	Channel  string
	Limit    int
}

// ParseQuery extracts command-line style arguments from raw input.
// Example: find "invoice" --channel tech --limit 5
func ParseQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		// A quoted phrase is one term, flag-looking tokens included.
		if strings.HasPrefix(part, `"`) {
			phrase := strings.TrimPrefix(part, `"`)
			for !strings.HasSuffix(part, `"`) && i+1 < len(parts) {
				i++
				part = parts[i]
				phrase += " " + part
			}
			textTerms = append(textTerms, strings.TrimSuffix(phrase, `"`))
			continue
		}

		if strings.HasPrefix(part, "--") {
			// A dangling flag with no value is ignored, not searched for.
			if i+1 >= len(parts) {
				continue
			}
			val := parts[i+1]

			switch strings.TrimPrefix(part, "--") {
			case "channel":
				query.Channel = val
			case "limit":
				if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
					query.Limit = limit
				}
			}
			i++
			continue
		}

		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
