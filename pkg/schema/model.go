package schema

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formfields/pkg/forms"
)

// CheckDuplicateName reports two columns sharing a name.
const CheckDuplicateName = "models.E001"

// ErrCheckFailed is returned by Model.Form when a check reports an error.
var ErrCheckFailed = errors.New("schema: model checks failed")

// Model is a named, ordered set of column declarations.
type Model struct {
	Name    string
	Columns []Declaration
}

// Check runs every column check and reports duplicate names. Each column is
// stamped with the model name first.
func (m *Model) Check() []CheckMessage {
	var out []CheckMessage
	seen := make(map[string]struct{}, len(m.Columns))
	for _, column := range m.Columns {
		desc := column.Descriptor()
		desc.Model = m.Name
		out = append(out, column.Check()...)
		if desc.Name == "" {
			continue
		}
		if _, dup := seen[desc.Name]; dup {
			out = append(out, checkError(CheckDuplicateName, desc.object(),
				fmt.Sprintf("Field name %q is declared more than once.", desc.Name), ""))
			continue
		}
		seen[desc.Name] = struct{}{}
	}
	return out
}

// Form checks the model and derives a form from its columns. The model name
// is used as the form name unless options override it.
func (m *Model) Form(options ...forms.Option) (*forms.Form, error) {
	if msgs := Serious(m.Check()); len(msgs) > 0 {
		errs := make([]error, 0, len(msgs)+1)
		errs = append(errs, ErrCheckFailed)
		for _, msg := range msgs {
			errs = append(errs, msg)
		}
		return nil, errors.Join(errs...)
	}

	entries := make([]forms.Entry, 0, len(m.Columns))
	for _, column := range m.Columns {
		field, err := column.BuildField()
		if err != nil {
			return nil, err
		}
		entries = append(entries, forms.Entry{Name: column.Descriptor().Name, Field: field})
	}
	opts := append([]forms.Option{forms.WithName(m.Name)}, options...)
	return forms.New(entries, opts...)
}
