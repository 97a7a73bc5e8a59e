package toc

import (
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// StripLinks replaces every inline Markdown link `[label](target)` with its
// label, leaving the surrounding text untouched.
func StripLinks(text string) string {
	if !strings.Contains(text, "](") {
		return text
	}
	return linkPattern.ReplaceAllString(text, "${1}")
}

// droppedRunes are removed from slugs. The set follows GitHub's anchor
// rendering as observed, not a published rule.
var droppedRunes = map[rune]bool{
	'(': true, ')': true, '`': true, '´': true,
	'\'': true, '"': true, '‘': true, '’': true, '“': true, '”': true,
	'[': true, ']': true, '{': true, '}': true,
	'?': true, '¿': true, '!': true, '¡': true,
	'.': true, ',': true, '\\': true, '/': true, ':': true, ';': true,
	'§': true, '$': true, '%': true, '&': true, '=': true, '^': true,
	'°': true, '#': true, '+': true, '*': true, '<': true, '>': true,
}

// TextToURL converts heading text into the URL fragment used as its anchor.
//
// Links are reduced to their labels, the text is trimmed, spaces become
// hyphens, punctuation is dropped and ASCII letters are lower-cased. Other
// runes (accented letters, emoji) pass through unchanged. Identical headings
// produce identical slugs.
func TextToURL(text string) string {
	text = strings.TrimSpace(StripLinks(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case droppedRunes[r]:
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
