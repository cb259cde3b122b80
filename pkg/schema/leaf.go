package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// Leaf column types.
const (
	TypeString  = "string"
	TypeText    = "text"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeChoice  = "choice"
)

// CheckUnknownType reports a leaf column with an unsupported type.
const CheckUnknownType = "fields.E004"

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *widgets.Registry
)

func sharedRegistry() *widgets.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = widgets.NewRegistry()
	})
	return defaultRegistry
}

// LeafColumn declares a scalar column.
type LeafColumn struct {
	Column
	Type          string            `json:"type" yaml:"type"`
	Format        string            `json:"format,omitempty" yaml:"format,omitempty"`
	MaxLength     int               `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinLength     int               `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MinValue      *int              `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue      *int              `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Choices       []widgets.Choice  `json:"choices,omitempty" yaml:"choices,omitempty"`
	Widget        string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	ErrorMessages map[string]string `json:"error_messages,omitempty" yaml:"error_messages,omitempty"`
	// Registry resolves the widget. Nil uses a shared default registry.
	Registry *widgets.Registry `json:"-" yaml:"-"`
}

func (c *LeafColumn) kind() string {
	kind := strings.ToLower(strings.TrimSpace(c.Type))
	if kind == "" {
		kind = TypeString
	}
	if kind == TypeString && len(c.Choices) > 0 {
		kind = TypeChoice
	}
	return kind
}

// Check implements Declaration.
func (c *LeafColumn) Check() []CheckMessage {
	out := c.Column.Check()
	switch c.kind() {
	case TypeString, TypeText, TypeInteger, TypeBoolean, TypeChoice:
	default:
		out = append(out, checkError(CheckUnknownType, c.object(), fmt.Sprintf("Unknown column type %q.", c.Type), ""))
	}
	return out
}

// BuildField implements Declaration.
func (c *LeafColumn) BuildField() (fields.Field, error) {
	registry := c.Registry
	if registry == nil {
		registry = sharedRegistry()
	}
	kind := c.kind()
	hint := widgets.Hint{
		Type:      kind,
		Format:    c.Format,
		Widget:    c.Widget,
		MaxLength: c.MaxLength,
		Choices:   c.Choices,
	}
	widget, name, ok := registry.Build(hint)
	if !ok {
		return nil, fmt.Errorf("schema: %s: no widget registered for %q", c.object(), name)
	}

	options := append(c.options(),
		fields.WithWidget(widget),
		fields.WithErrorMessages(c.ErrorMessages),
	)

	switch kind {
	case TypeBoolean:
		return fields.NewBoolean(options...), nil
	case TypeInteger:
		if c.MinValue != nil {
			options = append(options, fields.WithMinValue(*c.MinValue))
		}
		if c.MaxValue != nil {
			options = append(options, fields.WithMaxValue(*c.MaxValue))
		}
		return fields.NewInteger(options...), nil
	case TypeChoice:
		options = append(options, fields.WithChoices(c.Choices...))
		return fields.NewChoice(options...), nil
	case TypeString, TypeText:
		options = append(options,
			fields.WithMaxLength(c.MaxLength),
			fields.WithMinLength(c.MinLength),
			fields.WithFormat(c.Format),
		)
		return fields.NewChar(options...), nil
	default:
		return nil, fmt.Errorf("schema: %s: unknown column type %q", c.object(), c.Type)
	}
}
