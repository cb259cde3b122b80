package fields

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/widgets"
)

// IntegerField cleans whole numbers into int values.
type IntegerField struct {
	leaf
}

var _ Repeatable = (*IntegerField)(nil)

// NewInteger constructs an integer field rendered with a number input.
func NewInteger(options ...Option) *IntegerField {
	return &IntegerField{leaf: newLeaf(options, widgets.TextInput{InputType: "number"})}
}

// Bounds returns the configured minimum and maximum, nil when unset.
func (f *IntegerField) Bounds() (min, max *int) {
	return f.cfg.minValue, f.cfg.maxValue
}

// Clean implements Field. Empty optional input cleans to nil.
func (f *IntegerField) Clean(raw any) (any, error) {
	value := strings.TrimSpace(StringValue(raw))
	if value == "" {
		if f.cfg.spec.Required {
			return nil, f.required()
		}
		return nil, nil
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		msg := f.cfg.spec.Message(CodeInvalid)
		if !f.cfg.spec.HasMessage(CodeInvalid) {
			msg = "Enter a whole number."
		}
		return nil, NewError(CodeInvalid, msg)
	}
	if verr := checkConstraints(number, f.cfg.spec, boundConstraints(f.cfg.minValue, f.cfg.maxValue)); verr != nil {
		return nil, verr
	}
	return number, nil
}
