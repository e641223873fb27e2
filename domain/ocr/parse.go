package ocr

import (
	"strings"
	"unicode"
)

// minNameLineLen filters single-glyph noise lines out of tooltip text.
const minNameLineLen = 3

// markerOverlap is the character-set overlap required for a trigger marker
// match when the marker is not a plain substring of the recognized text.
const markerOverlap = 0.7

// CleanText strips the artifacts the recognizer tends to produce on game
// text: pipe and slash glyphs from panel borders, underscores from dividers,
// and runs of whitespace.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '[', ']', '|', '\\', '/', '_':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	out := strings.Join(lines, "\n")
	return strings.TrimSpace(out)
}

// ParseItemName extracts the item label from tooltip text. The name renders
// as the leading run of all-caps lines; flavor text and stats below it use
// mixed case and are discarded.
func ParseItemName(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minNameLineLen || !isAllCaps(line) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// isAllCaps reports whether the line contains at least one letter and no
// lowercase letters. Digits, spaces and punctuation are allowed.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// FuzzyMarker reports whether the recognized text matches the expected panel
// marker. Exact substring wins; otherwise the marker's character set must
// overlap the text's by markerOverlap, which tolerates the odd dropped or
// substituted glyph.
func FuzzyMarker(text, marker string) bool {
	text = strings.ToUpper(strings.TrimSpace(text))
	marker = strings.ToUpper(strings.TrimSpace(marker))
	if marker == "" || text == "" {
		return false
	}
	if strings.Contains(text, marker) {
		return true
	}
	markerSet := charSet(marker)
	textSet := charSet(text)
	matched := 0
	for r := range markerSet {
		if textSet[r] {
			matched++
		}
	}
	return float64(matched) >= markerOverlap*float64(len(markerSet))
}

func charSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		if r == ' ' {
			continue
		}
		set[r] = true
	}
	return set
}
