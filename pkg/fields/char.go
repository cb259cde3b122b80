package fields

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formfields/pkg/widgets"
)

// CharField cleans free text. Surrounding whitespace is stripped unless
// WithoutStrip is set.
type CharField struct {
	leaf
}

var _ Repeatable = (*CharField)(nil)

// NewChar constructs a text field rendered with a text input by default.
func NewChar(options ...Option) *CharField {
	fallback := widgets.Widget(widgets.TextInput{})
	cfg := newConfig(options)
	switch cfg.format {
	case FormatEmail:
		fallback = widgets.TextInput{InputType: "email"}
	case FormatURL:
		fallback = widgets.TextInput{InputType: "url"}
	}
	return &CharField{leaf: newLeaf(options, fallback)}
}

// MaxLength returns the configured maximum length, 0 when unlimited.
func (f *CharField) MaxLength() int {
	return f.cfg.maxLength
}

// MinLength returns the configured minimum length.
func (f *CharField) MinLength() int {
	return f.cfg.minLength
}

// Format returns the configured format.
func (f *CharField) Format() string {
	return f.cfg.format
}

// Clean implements Field. It returns a string.
func (f *CharField) Clean(raw any) (any, error) {
	value := StringValue(raw)
	if !f.cfg.noStrip {
		value = strings.TrimSpace(value)
	}
	if value == "" {
		if f.cfg.spec.Required {
			return nil, f.required()
		}
		return "", nil
	}

	constraints := lengthConstraints(f.cfg.minLength, f.cfg.maxLength, utf8.RuneCountInString(value))
	constraints = append(constraints, formatConstraints(f.cfg.format)...)
	if verr := checkConstraints(value, f.cfg.spec, constraints); verr != nil {
		return nil, verr
	}
	return value, nil
}
