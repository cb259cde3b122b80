package render

import "strings"

// RenderOptions describe per-request data that renderers use without
// changing the form.
type RenderOptions struct {
	// Action is the form action URL. Empty posts back to the current page.
	Action string
	// Method defaults to POST.
	Method string
	// SubmitLabel defaults to "Submit".
	SubmitLabel string
	// Hidden lists extra hidden inputs (CSRF tokens, versions).
	Hidden map[string]string
	// Errors adds server-side messages keyed by submitted key, on top of the
	// bound form's own errors. Use MapErrorPayload to translate external
	// payloads. NonFieldErrors keys render above the fields.
	Errors map[string][]string
	// Only restricts rendering to the named fields, keeping form order.
	Only []string
}

// MethodOrDefault returns the upper-cased method, POST when unset.
func (o RenderOptions) MethodOrDefault() string {
	if method := strings.ToUpper(strings.TrimSpace(o.Method)); method != "" {
		return method
	}
	return "POST"
}

// SubmitLabelOrDefault returns the submit button label.
func (o RenderOptions) SubmitLabelOrDefault() string {
	if label := strings.TrimSpace(o.SubmitLabel); label != "" {
		return label
	}
	return "Submit"
}

// Includes reports whether field name passes the Only filter.
func (o RenderOptions) Includes(name string) bool {
	if len(o.Only) == 0 {
		return true
	}
	for _, candidate := range o.Only {
		if strings.TrimSpace(candidate) == name {
			return true
		}
	}
	return false
}
