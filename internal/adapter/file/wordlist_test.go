package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWordlist(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"newlines", "password\nadmin\nroot\n", []string{"password", "admin", "root"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"csv", "one, two,three", []string{"one", "two", "three"}},
		{"blank entries", "\n\n  \n,x,,", []string{"x"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWordlist(tt.text))
		})
	}
}

func TestLoadWordlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("letmein\nqwerty\n"), 0644))

	words, err := LoadWordlist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"letmein", "qwerty"}, words)

	_, err = LoadWordlist(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
