package fields

import (
	"fmt"
	"strings"
)

// IsBlank reports whether raw carries no user input: nil, a whitespace-only
// string, or a collection whose every element is blank.
func IsBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		for _, item := range v {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	case []any:
		for _, item := range v {
			if !IsBlank(item) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, item := range v {
			if !IsBlank(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsEmptyValue reports whether a cleaned value counts as "no value" for the
// required check.
func IsEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// StringValue converts a raw value to the string a widget displays.
func StringValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[len(v)-1]
	case []any:
		if len(v) == 0 {
			return ""
		}
		return StringValue(v[len(v)-1])
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
