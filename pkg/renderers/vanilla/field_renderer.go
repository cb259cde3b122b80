package vanilla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/render"
)

// fieldContext builds the template data of one field. Errors reported
// under the field key or any of its nested keys are shown together.
func fieldContext(field forms.BoundField, errs map[string][]string) (map[string]any, error) {
	widget, err := field.Widget()
	if err != nil {
		return nil, fmt.Errorf("render field %q: %w", field.Name, err)
	}
	return map[string]any{
		"name":      field.Name,
		"html_name": field.HTMLName,
		"label":     field.Label,
		"required":  field.Required,
		"help_text": render.SanitizeHelpText(field.HelpText),
		"widget":    widget,
		"errors":    errorsFor(field.HTMLName, errs),
	}, nil
}

func errorsFor(key string, errs map[string][]string) []string {
	if len(errs) == 0 {
		return nil
	}
	var nested []string
	for candidate := range errs {
		if strings.HasPrefix(candidate, key+fields.Separator) {
			nested = append(nested, candidate)
		}
	}
	sort.Strings(nested)

	out := append([]string(nil), errs[key]...)
	for _, candidate := range nested {
		out = append(out, errs[candidate]...)
	}
	return render.MergeFormErrors(nil, out...)
}

func mergeErrors(sets ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, set := range sets {
		for key, messages := range set {
			out[key] = render.MergeFormErrors(out[key], messages...)
		}
	}
	return out
}
