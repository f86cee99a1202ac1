package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQASetMarshalLeveled(t *testing.T) {
	set := NewLeveledQASet(map[Tier][]QAPair{
		TierBasic:  {{Question: "B1?", Answer: "A1"}},
		TierExpert: {{Question: "E1?", Answer: "A2"}},
	})

	data, err := json.Marshal(set)
	require.NoError(t, err)

	// All three tier keys are always present, missing tiers as empty arrays.
	assert.JSONEq(t, `{
		"basic": [{"question": "B1?", "answer": "A1"}],
		"intermediate": [],
		"expert": [{"question": "E1?", "answer": "A2"}]
	}`, string(data))
}

func TestQASetMarshalFlat(t *testing.T) {
	set := NewFlatQASet([]QAPair{{Question: "Q1?", Answer: "A1"}})

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question": "Q1?", "answer": "A1"}]`, string(data))
}

func TestQASetMarshalEmptyFlat(t *testing.T) {
	set := NewFlatQASet(nil)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestQASetUnmarshalFlat(t *testing.T) {
	var set QASet
	err := json.Unmarshal([]byte(`[{"question": "Q1?", "answer": "A1"}]`), &set)
	require.NoError(t, err)

	assert.Equal(t, QAFlat, set.Kind)
	require.Len(t, set.Flat, 1)
	assert.Nil(t, set.Levels)
}

func TestQASetUnmarshalLeveled(t *testing.T) {
	var set QASet
	err := json.Unmarshal([]byte(`{"basic": [{"question": "B1?", "answer": "A1"}], "intermediate": [], "expert": []}`), &set)
	require.NoError(t, err)

	assert.Equal(t, QALeveled, set.Kind)
	assert.Len(t, set.Levels[TierBasic], 1)
	assert.Nil(t, set.Flat)
}

func TestQASetRoundTrip(t *testing.T) {
	original := NewLeveledQASet(map[Tier][]QAPair{
		TierBasic:        {{Question: "B1?", Answer: "A1"}},
		TierIntermediate: {{Question: "I1?", Answer: "A2"}},
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded QASet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, QALeveled, decoded.Kind)
	assert.Equal(t, original.Questions(), decoded.Questions())
}

func TestQASetQuestionsOrder(t *testing.T) {
	set := NewLeveledQASet(map[Tier][]QAPair{
		TierExpert:       {{Question: "E1?", Answer: "A"}},
		TierBasic:        {{Question: " B1? ", Answer: "A"}, {Question: "B2?", Answer: "A"}},
		TierIntermediate: {{Question: "I1?", Answer: "A"}},
	})

	// Tier order is fixed regardless of map iteration, questions trimmed.
	assert.Equal(t, []string{"B1?", "B2?", "I1?", "E1?"}, set.Questions())
}

func TestQASetIsEmpty(t *testing.T) {
	var nilSet *QASet
	assert.True(t, nilSet.IsEmpty())
	assert.True(t, NewFlatQASet(nil).IsEmpty())
	assert.True(t, NewLeveledQASet(nil).IsEmpty())
	assert.True(t, NewLeveledQASet(map[Tier][]QAPair{TierBasic: {}}).IsEmpty())
	assert.False(t, NewFlatQASet([]QAPair{{Question: "Q?", Answer: "A"}}).IsEmpty())
	assert.False(t, NewLeveledQASet(map[Tier][]QAPair{TierExpert: {{Question: "Q?", Answer: "A"}}}).IsEmpty())
}

func TestNewGenerationRequestTrims(t *testing.T) {
	req := NewGenerationRequest("  Backend Engineer  ", "\tBuilds APIs.\n")
	assert.Equal(t, "Backend Engineer", req.JobTitle)
	assert.Equal(t, "Builds APIs.", req.JobDescription)
}

func TestGenerationRequestValidate(t *testing.T) {
	assert.Empty(t, NewGenerationRequest("Engineer", "Builds things").Validate())

	errs := NewGenerationRequest("", "   ").Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "job_title", errs[0].Field)
	assert.Equal(t, CodeMissingField, errs[0].Code)
	assert.Equal(t, "job_description", errs[1].Field)
}
