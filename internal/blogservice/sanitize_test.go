package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Great post!",
			want:  "Great post!",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "script tag around text",
			input: "nice <script>alert(1)</script>read",
			want:  "nice read",
		},
		{
			name:  "multiline script tag",
			input: "before<SCRIPT SRC=\"evil.js\">\nsteal()\n</SCRIPT> after",
			want:  "before after",
		},
		{
			name:  "surrounding whitespace",
			input: "  <script></script>  thanks  ",
			want:  "thanks",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeText(tc.input))
		})
	}
}
