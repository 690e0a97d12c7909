package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field name into a label: "confirmPassword" becomes
// "Confirm Password" and "phone_number" becomes "Phone Number".
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	segments := make([]string, 0, len(words))
	for _, word := range words {
		for _, part := range splitCamel(word) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(word string) []string {
	runes := []rune(word)
	var (
		out   []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
