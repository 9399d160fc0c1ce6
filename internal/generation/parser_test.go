package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "bare JSON array",
			raw:      `["A","B"]`,
			expected: []string{"A", "B"},
		},
		{
			name:     "fenced code block with json annotation",
			raw:      "```json\n[\"A\",\"B\"]\n```",
			expected: []string{"A", "B"},
		},
		{
			name:     "fenced code block without annotation",
			raw:      "```\n[\"A\",\"B\"]\n```",
			expected: []string{"A", "B"},
		},
		{
			name:     "array embedded in prose",
			raw:      `Sure! ["X"]`,
			expected: []string{"X"},
		},
		{
			name:     "array embedded mid-sentence",
			raw:      `Here are your tags: ["Tech","AI"] — hope that helps!`,
			expected: []string{"Tech", "AI"},
		},
		{
			name:     "not json at all",
			raw:      "not json at all",
			expected: []string{},
		},
		{
			name:     "mixed-type array rejected",
			raw:      `["A", 2]`,
			expected: []string{},
		},
		{
			name:     "array extracted from surrounding object",
			raw:      `{"tags":["A"]}`,
			expected: []string{"A"},
		},
		{
			name:     "empty string",
			raw:      "",
			expected: []string{},
		},
		{
			name:     "empty array",
			raw:      "[]",
			expected: []string{},
		},
		{
			name:     "whitespace padding",
			raw:      "  \n [\"A\"] \n ",
			expected: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.raw))
		})
	}
}

func TestParseTagsNeverNil(t *testing.T) {
	t.Parallel()
	// Callers render the result directly; a nil slice would make the
	// degraded case distinguishable from an empty classification.
	assert.NotNil(t, ParseTags("garbage"))
	assert.NotNil(t, ParseTags(""))
}
