package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
)

// ErrorMapping splits an external error payload into messages keyed by
// submitted key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps error paths reported by another system (JSON
// pointers, dotted paths, indexed rows) onto the submitted keys of a form.
// keys is usually Form.Keys(). Row indexes are dropped because rows share
// one key, so "/contacts/0/email" lands on "contacts__email". Paths that
// match no key, and their parents, become form-level errors.
func MapErrorPayload(keys []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := collectKeyPaths(keys)

	for rawPath, messages := range payload {
		normalizedMessages := normalizeMessages(messages)
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, known)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalizedMessages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Apply merges the mapping into a flat error map as used by
// RenderOptions.Errors, with form-level messages under forms.NonFieldErrors.
func (m ErrorMapping) Apply(dest map[string][]string) map[string][]string {
	if dest == nil {
		dest = make(map[string][]string, len(m.Fields)+1)
	}
	for key, messages := range m.Fields {
		dest[key] = MergeFormErrors(dest[key], messages...)
	}
	if len(m.Form) > 0 {
		dest[forms.NonFieldErrors] = MergeFormErrors(dest[forms.NonFieldErrors], m.Form...)
	}
	return dest
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

// mapErrorPath resolves raw to the longest known key. Row indexes are
// dropped since rows share one key; leading envelope segments such as
// "body" or "data" are tried both kept and dropped.
func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := known[trimmed]; ok {
		return trimmed, false
	}
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := withoutIndexes(splitErrorPath(trimmed))
	best := longestKnownPrefix(segments, known)
	if unwrapped := longestKnownPrefix(withoutEnvelope(segments), known); keyDepth(unwrapped) > keyDepth(best) {
		best = unwrapped
	}
	return best, best == ""
}

// splitErrorPath accepts JSON pointers ("/a/0/b", "#/a"), JSONPath-like
// ("$.a[0].b"), dotted ("a.0.b") and wire keys ("a__b").
func splitErrorPath(path string) []string {
	path = strings.TrimLeft(path, "#$./")
	path = strings.NewReplacer("[", ".", "]", "", fields.Separator, ".").Replace(path)

	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '/' })
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, strings.NewReplacer("~1", "/", "~0", "~").Replace(part))
	}
	return out
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func withoutEnvelope(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
		default:
			return segments
		}
	}
	return segments
}

func longestKnownPrefix(segments []string, known map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], fields.Separator)
		if _, ok := known[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func keyDepth(key string) int {
	if key == "" {
		return 0
	}
	return strings.Count(key, fields.Separator) + 1
}

func collectKeyPaths(keys []string) map[string]struct{} {
	dest := make(map[string]struct{}, len(keys)*2)
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		parts := strings.Split(key, fields.Separator)
		for end := 1; end <= len(parts); end++ {
			dest[strings.Join(parts[:end], fields.Separator)] = struct{}{}
		}
	}
	return dest
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
