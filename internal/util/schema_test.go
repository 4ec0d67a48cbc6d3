package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleArgs struct {
	MeetingID string  `json:"meeting_id" description:"Meeting identifier"`
	Limit     *int    `json:"limit" description:"Optional result cap"`
	Cursor    string  `json:"cursor,omitempty"`
	Score     float64 `json:"score"`
	hidden    string  //nolint:unused
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleArgs{})

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "meeting_id")
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "cursor")
	assert.NotContains(t, props, "hidden")

	meetingID := props["meeting_id"].(map[string]any)
	assert.Equal(t, "string", meetingID["type"])
	assert.Equal(t, "Meeting identifier", meetingID["description"])
	assert.Equal(t, "integer", props["limit"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])

	// Pointer and omitempty fields are optional, everything else required.
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"meeting_id", "score"}, req)
}

func TestCreateSchema_NonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meeting_id": map[string]any{"type": "string"},
			"limit":      map[string]any{"type": "integer"},
		},
		// []any mirrors a schema that round-tripped through JSON.
		"required": []any{"meeting_id"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"meeting_id": "mtg_1"}, schema))

	// JSON numbers decode as float64; whole values satisfy integer.
	assert.NoError(t, ValidateParameters(map[string]any{"meeting_id": "mtg_1", "limit": 5.0}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"meeting_id": "mtg_1", "limit": 5.5}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	var vErr *ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, "meeting_id", vErr.Field)
	}

	err = ValidateParameters(map[string]any{"meeting_id": 42}, schema)
	assert.Error(t, err)
	if assert.ErrorAs(t, err, &vErr) {
		assert.Contains(t, vErr.Message, "expected type string")
	}

	// Extra fields not in the schema pass through untouched.
	assert.NoError(t, ValidateParameters(map[string]any{"meeting_id": "mtg_1", "extra": true}, schema))
}
