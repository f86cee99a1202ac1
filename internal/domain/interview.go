package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Tier is one of the three fixed difficulty levels used to group
// generated questions.
type Tier string

const (
	TierBasic        Tier = "basic"
	TierIntermediate Tier = "intermediate"
	TierExpert       Tier = "expert"
)

// AllTiers returns the tiers in their canonical iteration order.
func AllTiers() []Tier {
	return []Tier{TierBasic, TierIntermediate, TierExpert}
}

// QAPair is a single generated question with its model answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAKind discriminates the two supported Q&A shapes.
type QAKind int

const (
	QAFlat QAKind = iota
	QALeveled
)

// QASet is a tagged union over the two Q&A shapes: a flat ordered
// sequence of pairs, or a mapping from difficulty tier to pairs.
// Exactly one of Flat/Levels is populated depending on Kind.
type QASet struct {
	Kind   QAKind
	Flat   []QAPair
	Levels map[Tier][]QAPair
}

func NewFlatQASet(pairs []QAPair) *QASet {
	return &QASet{Kind: QAFlat, Flat: pairs}
}

func NewLeveledQASet(levels map[Tier][]QAPair) *QASet {
	if levels == nil {
		levels = make(map[Tier][]QAPair)
	}
	return &QASet{Kind: QALeveled, Levels: levels}
}

// IsEmpty reports whether the set holds no pairs at all.
func (s *QASet) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.Kind == QALeveled {
		for _, tier := range AllTiers() {
			if len(s.Levels[tier]) > 0 {
				return false
			}
		}
		return true
	}
	return len(s.Flat) == 0
}

// Questions flattens the set into an ordered question list: tier order
// basic, intermediate, expert for leveled sets, array order for flat.
func (s *QASet) Questions() []string {
	if s == nil {
		return nil
	}
	questions := make([]string, 0)
	if s.Kind == QALeveled {
		for _, tier := range AllTiers() {
			for _, pair := range s.Levels[tier] {
				questions = append(questions, strings.TrimSpace(pair.Question))
			}
		}
		return questions
	}
	for _, pair := range s.Flat {
		questions = append(questions, strings.TrimSpace(pair.Question))
	}
	return questions
}

// MarshalJSON renders the wire/storage shape: a bare array for flat
// sets, an object keyed by the three tiers for leveled sets.
func (s *QASet) MarshalJSON() ([]byte, error) {
	if s.Kind == QALeveled {
		leveled := struct {
			Basic        []QAPair `json:"basic"`
			Intermediate []QAPair `json:"intermediate"`
			Expert       []QAPair `json:"expert"`
		}{
			Basic:        emptyIfNil(s.Levels[TierBasic]),
			Intermediate: emptyIfNil(s.Levels[TierIntermediate]),
			Expert:       emptyIfNil(s.Levels[TierExpert]),
		}
		return json.Marshal(leveled)
	}
	return json.Marshal(emptyIfNil(s.Flat))
}

// UnmarshalJSON accepts either shape, so legacy flat records stored
// before the tiered contract still round-trip.
func (s *QASet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs []QAPair
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return err
		}
		s.Kind = QAFlat
		s.Flat = pairs
		s.Levels = nil
		return nil
	}
	var levels map[Tier][]QAPair
	if err := json.Unmarshal(trimmed, &levels); err != nil {
		return err
	}
	s.Kind = QALeveled
	s.Levels = levels
	s.Flat = nil
	return nil
}

func emptyIfNil(pairs []QAPair) []QAPair {
	if pairs == nil {
		return []QAPair{}
	}
	return pairs
}

// GenerationRequest carries the validated inputs of one generation.
// Both fields are trimmed on construction and immutable afterwards.
type GenerationRequest struct {
	JobTitle       string
	JobDescription string
}

// NewGenerationRequest trims both fields. Emptiness is reported by
// Validate, never silently defaulted.
func NewGenerationRequest(jobTitle, jobDescription string) GenerationRequest {
	return GenerationRequest{
		JobTitle:       strings.TrimSpace(jobTitle),
		JobDescription: strings.TrimSpace(jobDescription),
	}
}

// Validate validates the generation request
func (r GenerationRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.JobTitle == "" {
		errs = append(errs, NewMissingFieldError("job_title"))
	}
	if r.JobDescription == "" {
		errs = append(errs, NewMissingFieldError("job_description"))
	}
	return errs
}

// InterviewRecord is the persisted result of one successful
// generation. Questions is the flattened redundant copy of QA;
// QA is nil for stub records.
type InterviewRecord struct {
	ID             string
	JobTitle       string
	JobDescription string
	Questions      []string
	QA             *QASet
	CreatedAt      time.Time
}
