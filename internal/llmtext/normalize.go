// Package llmtext coerces loosely structured model output into one of
// the two canonical Q&A shapes. The model is instructed to emit bare
// JSON but is not trusted to comply: responses arrive as exact JSON,
// code-fenced JSON, JSON embedded in prose, or the wrong top-level
// shape, and entries inside may be partial.
package llmtext

import (
	"encoding/json"
	"errors"
	"strings"

	"interview-agent/internal/domain"
)

// Mode selects which canonical shape the caller expects.
type Mode int

const (
	// ModeFlat expects a bare array of {question, answer} objects.
	ModeFlat Mode = iota
	// ModeLeveled expects an object keyed by the three difficulty
	// tiers; a bare array is tolerated and mapped into the basic tier.
	ModeLeveled
)

var (
	// ErrNoPayload means no parseable JSON document could be located.
	ErrNoPayload = errors.New("no JSON payload found in model output")
	// ErrEmptyResult means the document parsed but no entry survived
	// the question/answer filter.
	ErrEmptyResult = errors.New("no valid question/answer entries after filtering")
)

// An extractor proposes a candidate JSON document from the raw text,
// or passes to the next extractor in the chain.
type extractor func(text string) (string, bool)

// Normalize runs the extractor chain (exact document, fenced block,
// embedded object/array) and decodes the first candidate that parses.
// A document that parses but filters down to nothing fails immediately;
// the result is deterministic for identical input.
func Normalize(raw string, mode Mode) (*domain.QASet, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrNoPayload
	}

	for _, extract := range []extractor{exactDocument, fencedDocument, embeddedObject, embeddedArray} {
		candidate, ok := extract(text)
		if !ok {
			continue
		}
		set, err := decode(candidate, mode)
		if err == nil {
			return set, nil
		}
		if errors.Is(err, ErrEmptyResult) {
			return nil, err
		}
		// Parse failure: the candidate was not JSON, try the next extractor.
	}
	return nil, ErrNoPayload
}

// exactDocument proposes the whole text as-is.
func exactDocument(text string) (string, bool) {
	return text, true
}

// fencedDocument strips a triple-backtick fence with an optional
// language tag on the opening line.
func fencedDocument(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	rest := text[3:]
	newline := strings.IndexByte(rest, '\n')
	if newline == -1 {
		return "", false
	}
	body := rest[newline+1:]
	closing := strings.LastIndex(body, "```")
	if closing == -1 {
		return "", false
	}
	return strings.TrimSpace(body[:closing]), true
}

// embeddedObject searches prose for the first balanced top-level JSON
// object. It runs before embeddedArray so the object form wins when
// both parse; an array of pairs contains objects, so a failed object
// candidate still falls through to the array extractor.
func embeddedObject(text string) (string, bool) {
	return balancedSegment(text, '{', '}')
}

// embeddedArray searches prose for the first balanced JSON array.
func embeddedArray(text string) (string, bool) {
	return balancedSegment(text, '[', ']')
}

// balancedSegment returns the first segment of text delimited by a
// balanced open/close pair, ignoring delimiters inside JSON strings.
func balancedSegment(text string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start != -1 {
				inString = true
			}
		case open:
			if start == -1 {
				start = i
			}
			depth++
		case close:
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// loosePair detects key presence without trusting value types.
type loosePair struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// filterPairs keeps only entries that are objects carrying a non-empty
// question and an answer key. Everything else is dropped silently.
func filterPairs(entries []json.RawMessage) []domain.QAPair {
	pairs := make([]domain.QAPair, 0, len(entries))
	for _, entry := range entries {
		var loose loosePair
		if err := json.Unmarshal(entry, &loose); err != nil {
			continue
		}
		if loose.Question == nil || loose.Answer == nil {
			continue
		}
		if strings.TrimSpace(*loose.Question) == "" {
			continue
		}
		pairs = append(pairs, domain.QAPair{Question: *loose.Question, Answer: *loose.Answer})
	}
	return pairs
}

func decode(candidate string, mode Mode) (*domain.QASet, error) {
	if mode == ModeLeveled {
		return decodeLeveled(candidate)
	}
	return decodeFlat(candidate)
}

func decodeFlat(candidate string) (*domain.QASet, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &entries); err != nil {
		return nil, err
	}
	pairs := filterPairs(entries)
	if len(pairs) == 0 {
		return nil, ErrEmptyResult
	}
	return domain.NewFlatQASet(pairs), nil
}

func decodeLeveled(candidate string) (*domain.QASet, error) {
	trimmed := strings.TrimSpace(candidate)

	// A bare array where the leveled object was expected becomes the
	// basic tier, other tiers stay empty.
	if strings.HasPrefix(trimmed, "[") {
		var entries []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, err
		}
		set := domain.NewLeveledQASet(map[domain.Tier][]domain.QAPair{
			domain.TierBasic: filterPairs(entries),
		})
		if set.IsEmpty() {
			return nil, ErrEmptyResult
		}
		return set, nil
	}

	var rawLevels map[string][]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &rawLevels); err != nil {
		return nil, err
	}
	levels := make(map[domain.Tier][]domain.QAPair)
	for _, tier := range domain.AllTiers() {
		if entries, ok := rawLevels[string(tier)]; ok {
			if pairs := filterPairs(entries); len(pairs) > 0 {
				levels[tier] = pairs
			}
		}
	}
	set := domain.NewLeveledQASet(levels)
	if set.IsEmpty() {
		return nil, ErrEmptyResult
	}
	return set, nil
}
