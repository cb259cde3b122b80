package fields

import (
	"maps"

	"github.com/goliatone/go-formfields/pkg/submission"
)

// Separator joins a parent key and a child name in submitted keys.
const Separator = "__"

// Field is the capability set shared by leaf and composite fields. Field
// values are templates: they hold configuration only and can be reused to
// clean and render any number of independent submissions.
type Field interface {
	// Spec returns a copy of the label, help text, required flag and error
	// message overrides.
	Spec() Spec
	// ValueFromData extracts the raw value stored under name.
	ValueFromData(data submission.Values, name string) any
	// Clean validates raw and returns the cleaned value. Validation failures
	// are returned as *ValidationError.
	Clean(raw any) (any, error)
	// Render returns the widget markup for raw bound to name.
	Render(name string, raw any) (string, error)
}

// Repeatable is implemented by fields whose per-row raw values can be read
// back from a submission where each row repeats the same keys.
type Repeatable interface {
	Field
	ValuesFromData(data submission.Values, name string) []any
}

// Container is implemented by composite fields.
type Container interface {
	Field
	Children() []Child
}

// KeyLister reports the submitted keys a field reads when bound to name.
type KeyLister interface {
	Keys(name string) []string
}

// Child names one sub-field of a composite field.
type Child struct {
	Name  string
	Field Field
}

// Spec carries the presentation and validation settings shared by all
// fields.
type Spec struct {
	Label         string
	HelpText      string
	Required      bool
	ErrorMessages map[string]string
}

// Message returns the configured message for code, falling back to the
// built-in default.
func (s Spec) Message(code string) string {
	if msg := s.ErrorMessages[code]; msg != "" {
		return msg
	}
	return DefaultMessage(code)
}

// HasMessage reports whether code was overridden.
func (s Spec) HasMessage(code string) bool {
	return s.ErrorMessages[code] != ""
}

// Clone returns a copy that does not share the message map.
func (s Spec) Clone() Spec {
	out := s
	if len(s.ErrorMessages) > 0 {
		out.ErrorMessages = maps.Clone(s.ErrorMessages)
	} else {
		out.ErrorMessages = nil
	}
	return out
}

// Join builds the submitted key of child inside parent.
func Join(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + Separator + child
}

// KeysOf returns the submitted keys read by field when bound to name.
func KeysOf(field Field, name string) []string {
	if lister, ok := field.(KeyLister); ok {
		return lister.Keys(name)
	}
	return []string{name}
}

// omittable is implemented by fields whose input is left out of the
// submission when empty, which breaks positional row alignment.
type omittable interface {
	omittedWhenEmpty()
}

// CanRepeat reports whether field, and every field nested in it, can be
// recovered row by row from a repeated submission. Checkboxes cannot.
func CanRepeat(field Field) bool {
	if field == nil {
		return false
	}
	if _, ok := field.(Repeatable); !ok {
		return false
	}
	if _, ok := field.(omittable); ok {
		return false
	}
	if container, ok := field.(Container); ok {
		for _, child := range container.Children() {
			if !CanRepeat(child.Field) {
				return false
			}
		}
	}
	return true
}
