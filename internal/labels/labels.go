// Package labels derives display labels from field names.
package labels

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// Default converts a field name into a sentence-case label: words split on
// underscores, dashes and camelCase boundaries, only the first capitalised.
// "parent_names" becomes "Parent names".
func Default(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		segments = append(segments, strings.Fields(splitCamel(word))...)
	}
	if len(segments) == 0 {
		return ""
	}
	for idx, segment := range segments {
		segments[idx] = strings.ToLower(segment)
	}
	segments[0] = upperFirst(segments[0])
	return strings.Join(segments, " ")
}

// Leaf returns the label of the last "__" separated segment of a submitted
// key, so "contact__first_name" becomes "First name".
func Leaf(key string) string {
	if idx := strings.LastIndex(key, "__"); idx >= 0 {
		key = key[idx+2:]
	}
	return Default(key)
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func upperFirst(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
