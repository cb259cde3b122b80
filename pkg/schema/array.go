package schema

import (
	"fmt"

	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
)

// ArrayField declares a column holding a list of values of one inner field.
// Its form field is a dynamic input.
type ArrayField struct {
	Column
	// Field is the inner field. It is typed any because declarations may be
	// loaded from documents where the inner field could not be resolved;
	// Check reports anything that is not a repeatable fields.Field.
	Field        any
	Button       string
	DefaultCount int
	MaxCount     int
	// BaseCheck replaces Column.Check when set.
	BaseCheck func(Column) []CheckMessage
}

// ArrayOption configures an ArrayField.
type ArrayOption func(*ArrayField)

// NewArrayField returns a declaration labelled label with the dynamic input
// defaults applied.
func NewArrayField(label string, options ...ArrayOption) *ArrayField {
	field := &ArrayField{
		Column:       Column{Label: label},
		Button:       dynamicinputs.DefaultButton,
		DefaultCount: dynamicinputs.DefaultDefaultCount,
		MaxCount:     dynamicinputs.DefaultMaxCount,
	}
	for _, opt := range options {
		if opt != nil {
			opt(field)
		}
	}
	return field
}

// WithName sets the column name.
func WithName(name string) ArrayOption {
	return func(f *ArrayField) { f.Name = name }
}

// WithInnerField sets the inner field.
func WithInnerField(field any) ArrayOption {
	return func(f *ArrayField) { f.Field = field }
}

// WithButton sets the add row label.
func WithButton(label string) ArrayOption {
	return func(f *ArrayField) { f.Button = label }
}

// WithDefaultCount sets the number of rows shown when nothing was submitted.
func WithDefaultCount(n int) ArrayOption {
	return func(f *ArrayField) { f.DefaultCount = n }
}

// WithMaxCount caps the number of rows.
func WithMaxCount(n int) ArrayOption {
	return func(f *ArrayField) { f.MaxCount = n }
}

// WithHelpText sets the column help text. It is not passed to the form
// field.
func WithHelpText(text string) ArrayOption {
	return func(f *ArrayField) { f.HelpText = text }
}

// WithBlank allows an empty list.
func WithBlank(blank bool) ArrayOption {
	return func(f *ArrayField) { f.Blank = blank }
}

// Check runs the column checks, then reports a missing or unusable inner
// field and a non-positive max count.
func (f *ArrayField) Check() []CheckMessage {
	base := f.BaseCheck
	if base == nil {
		base = Column.Check
	}
	out := base(f.Column)
	out = append(out, f.checkField()...)
	out = append(out, f.checkMaxCount()...)
	return out
}

func (f *ArrayField) checkField() []CheckMessage {
	inner, ok := f.Field.(fields.Field)
	switch {
	case f.Field == nil:
		return []CheckMessage{checkError(dynamicinputs.CheckFieldRequired, f.object(),
			"ArrayField requires an inner field.", "Set Field to a form field such as fields.NewChar().")}
	case !ok:
		return []CheckMessage{checkError(dynamicinputs.CheckFieldRequired, f.object(),
			fmt.Sprintf("ArrayField inner field must be a form field, got %T.", f.Field), "")}
	case !fields.CanRepeat(inner):
		return []CheckMessage{checkError(dynamicinputs.CheckFieldRequired, f.object(),
			fmt.Sprintf("ArrayField inner field %T cannot be repeated.", f.Field),
			"Dynamic inputs cannot be nested directly; wrap them in a dictionary field outside the list.")}
	}
	return nil
}

func (f *ArrayField) checkMaxCount() []CheckMessage {
	if f.MaxCount > 0 {
		return nil
	}
	return []CheckMessage{checkError(dynamicinputs.CheckMaxCount, f.object(),
		"ArrayField max_count must be a positive integer.", "")}
}

// FormField derives the dynamic input for this column. The help text stays
// on the declaration.
func (f *ArrayField) FormField() (*dynamicinputs.Field, error) {
	inner, ok := f.Field.(fields.Field)
	if !ok {
		return nil, fmt.Errorf("schema: %s: %w", f.object(), dynamicinputs.ErrFieldRequired)
	}
	field, err := dynamicinputs.New(inner,
		dynamicinputs.WithLabel(f.DisplayLabel()),
		dynamicinputs.WithButton(f.Button),
		dynamicinputs.WithDefaultCount(f.DefaultCount),
		dynamicinputs.WithMaxCount(f.MaxCount),
		dynamicinputs.Required(!f.Blank),
	)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", f.object(), err)
	}
	return field, nil
}

// BuildField implements Declaration.
func (f *ArrayField) BuildField() (fields.Field, error) {
	return f.FormField()
}
