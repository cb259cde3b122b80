package render

import "github.com/goliatone/go-formfields/pkg/render/builtin"

// SanitizeHelpText strips help text down to the inline markup renderers
// allow.
func SanitizeHelpText(raw string) string {
	return builtin.SanitizeHelpText(raw)
}
