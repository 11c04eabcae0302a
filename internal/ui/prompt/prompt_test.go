package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase Y", "Y\n", true},
		{"padded yes", "  yes  \n", true},
		{"n", "n\n", false},
		{"no", "no\n", false},
		{"empty line defaults to no", "\n", false},
		{"unrelated input counts as no", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStandardPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Proceed? [y/N]: ", out.String())
		})
	}
}

func TestConfirmEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewStandardPrompter(strings.NewReader(""), &out)

	got, err := p.Confirm("Proceed?")
	require.NoError(t, err, "a closed stdin is not an error")
	assert.False(t, got, "no input means no")
}
