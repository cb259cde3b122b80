package schema

import (
	"strings"

	"github.com/goliatone/go-formfields/internal/labels"
	"github.com/goliatone/go-formfields/pkg/fields"
)

// Generic check identifiers.
const (
	CheckNameRequired   = "fields.E000"
	CheckNameUnderscore = "fields.E001"
	CheckNameSeparator  = "fields.E002"
	CheckNameReserved   = "fields.E003"
)

// Column holds the attributes every declaration shares.
type Column struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText string `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	// Blank allows the column to be left empty.
	Blank bool `json:"blank,omitempty" yaml:"blank,omitempty"`
	// Model names the owner in check messages.
	Model string `json:"-" yaml:"-"`
}

// Descriptor implements Declaration.
func (c *Column) Descriptor() *Column { return c }

// Check runs the generic column checks.
func (c Column) Check() []CheckMessage {
	var out []CheckMessage
	object := c.object()
	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		out = append(out, checkError(CheckNameRequired, object, "Field names are required.", ""))
	case strings.HasSuffix(name, "_"):
		out = append(out, checkError(CheckNameUnderscore, object, "Field names must not end with an underscore.", ""))
	}
	if strings.Contains(name, fields.Separator) {
		out = append(out, checkError(CheckNameSeparator, object, `Field names must not contain "__".`, ""))
	}
	if name == "pk" {
		out = append(out, checkError(CheckNameReserved, object, "'pk' is a reserved word that cannot be used as a field name.", ""))
	}
	return out
}

// DisplayLabel returns Label, or a label derived from Name.
func (c Column) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return labels.Default(c.Name)
}

func (c Column) object() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "<unnamed>"
	}
	if c.Model == "" {
		return name
	}
	return c.Model + "." + name
}

// options returns the leaf options every column contributes.
func (c Column) options() []fields.Option {
	return []fields.Option{
		fields.WithLabel(c.DisplayLabel()),
		fields.WithHelpText(c.HelpText),
		fields.Required(!c.Blank),
	}
}

// Declaration is a column that checks itself and derives a form field.
type Declaration interface {
	Descriptor() *Column
	Check() []CheckMessage
	BuildField() (fields.Field, error)
}
