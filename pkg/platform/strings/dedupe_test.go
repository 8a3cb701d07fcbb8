package strings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pstrings "peoplebook/pkg/platform/strings"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "removes duplicates preserving order",
			input: []string{"Surat", "Rajkot", "Surat", "Vadodara"},
			want:  []string{"Surat", "Rajkot", "Vadodara"},
		},
		{
			name:  "trims whitespace",
			input: []string{"  Tokyo ", "Osaka"},
			want:  []string{"Tokyo", "Osaka"},
		},
		{
			name:  "drops empty and whitespace-only entries",
			input: []string{"", "  ", "Alton"},
			want:  []string{"Alton"},
		},
		{
			name:  "trimmed duplicates collapse",
			input: []string{"Surat", " Surat "},
			want:  []string{"Surat"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pstrings.DedupeAndTrim(tt.input))
		})
	}
}
