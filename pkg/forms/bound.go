package forms

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-formfields/internal/labels"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/submission"
)

// Bound is a form attached to one submission (or to none, see
// Form.Unbound).
type Bound struct {
	form  *Form
	data  submission.Values
	bound bool

	once    sync.Once
	cleaned map[string]any
	errs    *fields.ValidationError
}

// Form returns the form this value was bound from.
func (b *Bound) Form() *Form { return b.form }

// IsBound reports whether a submission is attached.
func (b *Bound) IsBound() bool { return b.bound }

// Data returns a copy of the attached submission.
func (b *Bound) Data() submission.Values { return b.data.Clone() }

// IsValid reports whether the form is bound and every field cleaned.
func (b *Bound) IsValid() bool {
	if !b.bound {
		return false
	}
	b.fullClean()
	return b.errs.Empty()
}

// CleanedData returns the cleaned value of every field that cleaned, even
// when other fields failed.
func (b *Bound) CleanedData() map[string]any {
	if !b.bound {
		return nil
	}
	b.fullClean()
	return maps.Clone(b.cleaned)
}

// ErrorTree returns the validation errors keyed by field name, nil when
// there are none.
func (b *Bound) ErrorTree() *fields.ValidationError {
	if !b.bound {
		return nil
	}
	b.fullClean()
	if b.errs.Empty() {
		return nil
	}
	return b.errs
}

// Errors returns the validation errors keyed by submitted key.
func (b *Bound) Errors() map[string][]string {
	tree := b.ErrorTree()
	if tree == nil {
		return nil
	}
	out := make(map[string][]string)
	if msgs := tree.Messages(); len(msgs) > 0 {
		for _, msg := range msgs {
			out[NonFieldErrors] = append(out[NonFieldErrors], msg.Text)
		}
	}
	for _, name := range tree.FieldNames() {
		for key, texts := range tree.Field(name).Flatten(b.form.HTMLName(name)) {
			out[key] = append(out[key], texts...)
		}
	}
	return out
}

// Decode copies the cleaned data into target using `form` struct tags.
func (b *Bound) Decode(target any) error {
	if !b.bound {
		return ErrUnbound
	}
	if !b.IsValid() {
		return ErrInvalidForm
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("forms: decoder: %w", err)
	}
	if err := decoder.Decode(b.cleaned); err != nil {
		return fmt.Errorf("forms: decode: %w", err)
	}
	return nil
}

// Field returns the bound field called name.
func (b *Bound) Field(name string) (BoundField, bool) {
	idx, ok := b.form.index[name]
	if !ok {
		return BoundField{}, false
	}
	return b.boundField(b.form.entries[idx]), true
}

// Fields returns every bound field in order.
func (b *Bound) Fields() []BoundField {
	out := make([]BoundField, 0, len(b.form.entries))
	for _, entry := range b.form.entries {
		out = append(out, b.boundField(entry))
	}
	return out
}

func (b *Bound) fullClean() {
	b.once.Do(func() {
		b.cleaned = make(map[string]any, len(b.form.entries))
		b.errs = &fields.ValidationError{}

		for _, entry := range b.form.entries {
			raw := entry.Field.ValueFromData(b.data, b.form.HTMLName(entry.Name))
			value, err := entry.Field.Clean(raw)
			if err != nil {
				b.errs.SetField(entry.Name, fields.AsValidationError(err))
				continue
			}
			spec := entry.Field.Spec()
			if value == nil && spec.Required {
				b.errs.SetField(entry.Name, fields.RequiredError(spec.Message(fields.CodeRequired)))
				continue
			}
			b.cleaned[entry.Name] = value
		}

		log := b.form.cfg.logger
		if b.errs.Empty() {
			log.Debug("form validated", "form", b.form.cfg.name, "fields", len(b.form.entries), "errors", 0)
			return
		}
		invalid := b.errs.FieldNames()
		sort.Strings(invalid)
		log.Debug("form validated", "form", b.form.cfg.name, "fields", len(b.form.entries), "errors", len(invalid), "invalid", invalid)
	})
}

func (b *Bound) boundField(entry Entry) BoundField {
	spec := entry.Field.Spec()
	label := spec.Label
	if label == "" {
		label = labels.Default(entry.Name)
	}
	field := BoundField{
		Name:     entry.Name,
		HTMLName: b.form.HTMLName(entry.Name),
		Label:    label,
		HelpText: spec.HelpText,
		Required: spec.Required,
		field:    entry.Field,
		bound:    b,
	}
	if tree := b.ErrorTree(); tree != nil {
		field.Errors = tree.Field(entry.Name).Texts()
	}
	return field
}
