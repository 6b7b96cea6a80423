package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	system, user := buildPrompt("There is a huge pothole on 5th Ave near the bakery")

	assert.Contains(t, system, `"issueType"`)
	assert.Contains(t, system, `"severity"`)
	assert.Contains(t, system, `"recurrence"`)
	assert.Contains(t, system, "Never invent a location")
	assert.Contains(t, system, "valid JSON only")

	assert.Contains(t, user, "huge pothole on 5th Ave")
	assert.NotContains(t, user, `"issueType"`, "field schema belongs to the system prompt")
}

func TestParseDraft(t *testing.T) {
	body := `{"issueType":"Pothole","location":"5th Ave","severity":"high","description":"Large pothole near the bakery","recurrence":"recurring"}`

	tests := []struct {
		name string
		raw  string
	}{
		{"bare json", body},
		{"fenced", "```\n" + body + "\n```"},
		{"fenced with language tag", "```json\n" + body + "\n```"},
		{"surrounding whitespace", "\n  " + body + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := parseDraft(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Pothole", draft.IssueType)
			assert.Equal(t, "5th Ave", draft.Location)
			assert.Equal(t, "high", draft.Severity)
			assert.Equal(t, "recurring", draft.Recurrence)
		})
	}
}

func TestParseDraftInvalid(t *testing.T) {
	_, err := parseDraft("Sorry, I could not find an issue in that text.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse LLM response")
}
