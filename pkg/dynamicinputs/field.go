package dynamicinputs

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/render/builtin"
	"github.com/goliatone/go-formfields/pkg/submission"
)

// Check identifiers reported by declaration checks.
const (
	CheckFieldRequired = "dynamicinputs.E001"
	CheckMaxCount      = "dynamicinputs.E002"
)

var (
	// ErrFieldRequired is returned when the inner field is missing.
	ErrFieldRequired = errors.New("dynamicinputs: inner field is required")
	// ErrFieldNotRepeatable is returned when the inner field cannot be read
	// back row by row.
	ErrFieldNotRepeatable = errors.New("dynamicinputs: inner field cannot be repeated")
	// ErrInvalidMaxCount is returned when max count is not a positive integer.
	ErrInvalidMaxCount = errors.New("dynamicinputs: max count must be a positive integer")
	// ErrInvalidDefaultCount is returned when default count is negative.
	ErrInvalidDefaultCount = errors.New("dynamicinputs: default count must not be negative")
)

// Field is a list of rows of one inner field. It holds configuration only
// and is safe to reuse across submissions.
type Field struct {
	inner fields.Field
	cfg   config
}

var (
	_ fields.Field     = (*Field)(nil)
	_ fields.Container = (*Field)(nil)
	_ fields.KeyLister = (*Field)(nil)
)

// New validates the configuration and returns the field.
func New(inner fields.Field, options ...Option) (*Field, error) {
	field := &Field{inner: inner, cfg: newConfig(options)}
	if err := field.Check(); err != nil {
		return nil, err
	}
	return field, nil
}

// MustNew is New for package-level declarations. It panics on configuration
// errors.
func MustNew(inner fields.Field, options ...Option) *Field {
	field, err := New(inner, options...)
	if err != nil {
		panic(err)
	}
	return field
}

// Check reports the first configuration error.
func (f *Field) Check() error {
	if f.inner == nil {
		return ErrFieldRequired
	}
	if !fields.CanRepeat(f.inner) {
		return fmt.Errorf("%w: %T", ErrFieldNotRepeatable, f.inner)
	}
	if f.cfg.maxCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxCount, f.cfg.maxCount)
	}
	if f.cfg.defaultCount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDefaultCount, f.cfg.defaultCount)
	}
	return nil
}

// Inner returns the field used for every row.
func (f *Field) Inner() fields.Field { return f.inner }

// MaxCount returns the maximum number of rows.
func (f *Field) MaxCount() int { return f.cfg.maxCount }

// DefaultCount returns the number of rows shown when nothing was submitted.
func (f *Field) DefaultCount() int { return f.cfg.defaultCount }

// Button returns the add row label.
func (f *Field) Button() string { return f.cfg.button }

// Spec implements fields.Field. Messages not overridden on the list fall
// back to the inner field's overrides.
func (f *Field) Spec() fields.Spec {
	spec := fields.Spec{
		Label:    f.cfg.label,
		HelpText: f.cfg.helpText,
		Required: f.cfg.required,
	}
	messages := f.inner.Spec().ErrorMessages
	if len(messages) > 0 || len(f.cfg.messages) > 0 {
		spec.ErrorMessages = make(map[string]string, len(messages)+len(f.cfg.messages))
		for code, text := range messages {
			spec.ErrorMessages[code] = text
		}
		for code, text := range f.cfg.messages {
			spec.ErrorMessages[code] = text
		}
	}
	return spec
}

// Children implements fields.Container.
func (f *Field) Children() []fields.Child {
	return []fields.Child{{Field: f.inner}}
}

// Keys implements fields.KeyLister. Rows reuse the inner field's keys.
func (f *Field) Keys(name string) []string {
	return fields.KeysOf(f.inner, name)
}

// ValueFromData returns one raw value per submitted row. When nothing was
// submitted under name it returns DefaultCount empty rows.
func (f *Field) ValueFromData(data submission.Values, name string) any {
	var rows []any
	if repeatable, ok := f.inner.(fields.Repeatable); ok {
		rows = repeatable.ValuesFromData(data, name)
	}
	if len(rows) > 0 {
		return rows
	}
	return f.defaultRows()
}

// Clean implements fields.Field. Blank rows are skipped, the remaining rows
// are cleaned by the inner field and every row error is kept, indexed by the
// row position in the submission. The result is a []any.
func (f *Field) Clean(raw any) (any, error) {
	rows := toRows(raw)

	cleaned := make([]any, 0, len(rows))
	verr := &fields.ValidationError{}
	for idx, row := range rows {
		if fields.IsBlank(row) {
			continue
		}
		value, err := f.inner.Clean(row)
		if err != nil {
			verr.SetItem(idx, fields.AsValidationError(err))
			continue
		}
		if value == nil {
			continue
		}
		cleaned = append(cleaned, value)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if len(cleaned) == 0 && f.cfg.required {
		return nil, fields.RequiredError(f.requiredMessage())
	}
	return cleaned, nil
}

// Render implements fields.Field. It renders max(len(rows), 1) rows, each
// with a delete control, and one add control.
func (f *Field) Render(name string, raw any) (string, error) {
	rows := toRows(raw)
	if len(rows) == 0 {
		rows = []any{""}
	}

	markup := make([]string, 0, len(rows))
	for idx, row := range rows {
		widget, err := f.inner.Render(name, row)
		if err != nil {
			return "", fmt.Errorf("dynamicinputs: render row %d of %q: %w", idx, name, err)
		}
		markup = append(markup, widget)
	}

	renderer := f.cfg.renderer
	if renderer == nil {
		engine, err := builtin.Default()
		if err != nil {
			return "", fmt.Errorf("dynamicinputs: %w", err)
		}
		renderer = engine
	}

	out, err := renderer.RenderTemplate(builtin.DynamicInputTemplate, map[string]any{
		"name":       name,
		"rows":       markup,
		"button":     f.cfg.button,
		"max_count":  strconv.Itoa(f.cfg.maxCount),
		"can_delete": len(rows) > 1,
		"can_add":    len(rows) < f.cfg.maxCount,
	})
	if err != nil {
		return "", fmt.Errorf("dynamicinputs: render %q: %w", name, err)
	}
	return out, nil
}

func (f *Field) requiredMessage() string {
	if msg := f.cfg.messages[fields.CodeRequired]; msg != "" {
		return msg
	}
	return f.inner.Spec().Message(fields.CodeRequired)
}

func (f *Field) defaultRows() []any {
	rows := make([]any, f.cfg.defaultCount)
	for idx := range rows {
		rows[idx] = ""
	}
	return rows
}

func toRows(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = item
		}
		return out
	default:
		return []any{v}
	}
}
