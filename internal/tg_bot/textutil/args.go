package textutil

import (
	"html"
	"strings"
	"unicode"
)

// SplitN splits text on runs of whitespace into at most maxSplit+1 fields.
// The last field keeps the remainder of the text with its inner spacing.
// A negative maxSplit splits on every whitespace run.
func SplitN(text string, maxSplit int) []string {
	var parts []string
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	for rest != "" {
		if maxSplit >= 0 && len(parts) == maxSplit {
			parts = append(parts, rest)
			break
		}
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			parts = append(parts, rest)
			break
		}
		parts = append(parts, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	return parts
}

// EscapeHTML makes text safe for the HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(strings.ToLower(text))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Truncate cuts text to at most limit runes.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
