package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/session"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by field name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
	"fields":     {},
}

// MapErrorPayload normalises server error payloads (JSON pointers such as
// "/body/email", dotted paths such as "data.email", bracketed indexes) into
// form field names. Paths that do not resolve to a field become form-level
// messages so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawPath := range keys {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, ok := resolveFieldName(rawPath, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ApplyErrorPayload maps a server payload onto a session's fields and returns
// every message that has to be shown at form level.
func ApplyErrorPayload(s *session.Session, payload map[string][]string) []string {
	mapping := MapErrorPayload(s.Form(), payload)
	unmapped := s.ApplyFieldErrors(mapping.Fields)
	return MergeFormErrors(mapping.Form, unmapped...)
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func resolveFieldName(raw string, names map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := parsePathSegments(raw)
	segments = stripNumericSegments(segments)
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}

	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := names[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := segments[:0:0]
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
