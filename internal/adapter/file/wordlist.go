// Package file loads wordlists from disk.
package file

import (
	"fmt"
	"os"
	"strings"
)

// LoadWordlist reads a TXT or CSV wordlist. Entries are separated by newlines
// or commas; surrounding whitespace and blank entries are dropped.
func LoadWordlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return ParseWordlist(string(data)), nil
}

func ParseWordlist(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.TrimSpace(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}
