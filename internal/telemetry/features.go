package telemetry

import (
	"strings"
	"unicode/utf8"
)

// Size summarises a text payload without recording it.
type Size struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Lines int `json:"lines"`
}

// Measure returns the size of s. Lines is 0 for an empty string, otherwise
// 1 plus the number of '\n'.
func Measure(s string) Size {
	lines := 0
	if s != "" {
		lines = 1 + strings.Count(s, "\n")
	}
	return Size{Bytes: len(s), Runes: utf8.RuneCountInString(s), Lines: lines}
}

// Fields returns s as an event field map.
func (s Size) Fields() map[string]any {
	return map[string]any{"bytes": s.Bytes, "runes": s.Runes, "lines": s.Lines}
}
