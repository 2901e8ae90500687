package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "replaces newlines and tabs with spaces",
			input:    "file\nname\twith\rspaces",
			expected: "file name with spaces",
		},
		{
			name:     "collapses multiple spaces",
			input:    "file   name  with    spaces",
			expected: "file name with spaces",
		},
		{
			name:     "trims whitespace",
			input:    "  filename  ",
			expected: "filename",
		},
		{
			name:     "keeps dashes and unicode",
			input:    "Hello World – 2024",
			expected: "Hello World – 2024",
		},
		{
			name:     "returns Untitled for empty input",
			input:    "",
			expected: "Untitled",
		},
		{
			name:     "returns Untitled when everything is stripped",
			input:    `<>:"/\|?*`,
			expected: "Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	result := SanitizeFilename(long)
	assert.LessOrEqual(t, len(result), 200)
	assert.NotEmpty(t, result)
}
