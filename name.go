package placelist

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMaxNameLen is the longest line, in characters, accepted as a name.
const DefaultMaxNameLen = 60

// NameClassifier decides whether a line of a flattened listing is a
// plausible place name. The zero value rejects nothing but empty lines and
// rating lines; use DefaultNameClassifier for listing pages.
type NameClassifier struct {
	// Chrome lists UI strings that are rejected on exact match, such as
	// "Save" or a lone icon-font glyph.
	Chrome []string

	// Phrases lists navigation substrings that reject a line ("places").
	Phrases []string

	// Symbols lists characters that never appear in a name (separator and
	// currency glyphs).
	Symbols string

	// SchemePrefix rejects lines that start with it, such as links.
	SchemePrefix string

	// MaxLen is the maximum name length in characters. Zero disables the limit.
	MaxLen int
}

// DefaultNameClassifier returns the classifier tuned for map list pages.
func DefaultNameClassifier() *NameClassifier {
	return &NameClassifier{
		Chrome:       []string{"Save", "Share", "\ue145", "\ue80d", "\ue5d4"},
		Phrases:      []string{"places", "Shared list", "Permanently closed"},
		Symbols:      Separator + "$£€",
		SchemePrefix: "http",
		MaxLen:       DefaultMaxNameLen,
	}
}

// IsName reports whether line passes every name rule.
func (c *NameClassifier) IsName(line string) bool {
	if line == "" {
		return false
	}
	if c.SchemePrefix != "" && strings.HasPrefix(line, c.SchemePrefix) {
		return false
	}
	if slices.Contains(c.Chrome, line) {
		return false
	}
	for _, phrase := range c.Phrases {
		if strings.Contains(line, phrase) {
			return false
		}
	}
	if c.Symbols != "" && strings.ContainsAny(line, c.Symbols) {
		return false
	}
	if hasRating(line) {
		return false
	}
	return c.MaxLen <= 0 || utf8.RuneCountInString(line) <= c.MaxLen
}
