package fields

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/widgets"
)

// ChoiceField cleans a value that must be one of a fixed set of choices.
type ChoiceField struct {
	leaf
}

var _ Repeatable = (*ChoiceField)(nil)

// NewChoice constructs a choice field rendered as a select.
func NewChoice(options ...Option) *ChoiceField {
	cfg := newConfig(options)
	return &ChoiceField{leaf: newLeaf(options, widgets.Select{Choices: cfg.choices})}
}

// Choices returns a copy of the configured choices.
func (f *ChoiceField) Choices() []widgets.Choice {
	return append([]widgets.Choice(nil), f.cfg.choices...)
}

// Clean implements Field. It returns the selected value.
func (f *ChoiceField) Clean(raw any) (any, error) {
	value := strings.TrimSpace(StringValue(raw))
	if value == "" {
		if f.cfg.spec.Required {
			return nil, f.required()
		}
		return "", nil
	}
	for _, choice := range f.cfg.choices {
		if choice.Value == value {
			return value, nil
		}
	}
	msg := FormatMessage(f.cfg.spec.Message(CodeInvalidChoice), map[string]string{"value": value})
	return nil, NewError(CodeInvalidChoice, msg)
}
