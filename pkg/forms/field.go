package forms

import (
	"html"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/submission"
)

// BoundField is one field of a Bound form with everything needed to render
// it.
type BoundField struct {
	Name     string
	HTMLName string
	Label    string
	HelpText string
	Required bool
	Errors   []string

	field fields.Field
	bound *Bound
}

// Field returns the underlying field.
func (f BoundField) Field() fields.Field { return f.field }

// Value returns the raw value to display: the submitted value on a bound
// form, otherwise the initial value or what the field extracts from an
// empty submission (a dynamic input yields its default rows).
func (f BoundField) Value() any {
	if f.bound.bound {
		return f.field.ValueFromData(f.bound.data, f.HTMLName)
	}
	if initial, ok := f.bound.form.cfg.initial[f.Name]; ok {
		return initial
	}
	return f.field.ValueFromData(submission.New(), f.HTMLName)
}

// Widget renders the field's markup.
func (f BoundField) Widget() (string, error) {
	return f.field.Render(f.HTMLName, f.Value())
}

// String renders the widget, reporting render failures inline.
func (f BoundField) String() string {
	out, err := f.Widget()
	if err != nil {
		return "<!-- " + html.EscapeString(err.Error()) + " -->"
	}
	return out
}
