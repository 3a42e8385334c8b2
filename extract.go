package placelist

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator is the middle dot used by listing pages to join fields such as
// "Category · Neighborhood".
const Separator = "·"

// space matches any whitespace, including the no-break spaces rendered
// pages put between a score and its review count.
const space = `[\s\p{Zs}]`

var (
	// ratingRe matches a score rendered just before its review count, e.g. "4.5 (".
	ratingRe = regexp.MustCompile(`(\d\.\d)` + space + `*\(`)

	// priceRe matches a run of price-tier glyphs or a pound/euro amount,
	// including ranges like "£20-30" and "€10–20".
	priceRe = regexp.MustCompile(`(\${1,4}|[£€]` + space + `?\d+[\w–\-\d]*)`)

	digitRe = regexp.MustCompile(`\d`)
)

// ExtractRating returns the first "D.D" score that is followed by an opening
// parenthesis, or an empty string if text has none.
func ExtractRating(text string) string {
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractPrice returns the first price token in text verbatim, or an empty
// string if text has none.
func ExtractPrice(text string) string {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractDescription picks a description from the lines of a card.
// The earliest line containing the separator wins. Otherwise the first short
// capitalized phrase among lines 1 through 4 is used; line 0 is skipped as
// the presumed name.
func ExtractDescription(lines []string) string {
	for _, line := range lines {
		if strings.Contains(line, Separator) {
			return line
		}
	}
	for _, line := range bounded(lines, 1, 5) {
		if isShortPhrase(line) {
			return line
		}
	}
	return ""
}

// SplitLines splits text into trimmed, non-empty lines, preserving order.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func hasRating(line string) bool {
	return ratingRe.MatchString(line)
}

// isShortPhrase reports whether line has one to three words and starts with
// an uppercase letter.
func isShortPhrase(line string) bool {
	n := len(strings.Fields(line))
	if n < 1 || n > 3 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsUpper(r)
}

// bounded returns lines[lo:hi] clamped to the length of lines.
func bounded(lines []string, lo, hi int) []string {
	if lo >= len(lines) {
		return nil
	}
	return lines[lo:min(hi, len(lines))]
}
