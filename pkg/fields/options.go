package fields

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/widgets"
)

// Formats understood by WithFormat.
const (
	FormatEmail = "email"
	FormatURL   = "url"
)

// Option configures a leaf field.
type Option func(*config)

type config struct {
	spec      Spec
	widget    widgets.Widget
	noStrip   bool
	minLength int
	maxLength int
	format    string
	minValue  *int
	maxValue  *int
	choices   []widgets.Choice
}

func newConfig(options []Option) config {
	cfg := config{spec: Spec{Required: true}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.spec = cfg.spec.Clone()
	cfg.choices = append([]widgets.Choice(nil), cfg.choices...)
	return cfg
}

// ApplySpec runs options against base and returns the resulting Spec.
// Composite fields use it to share the leaf options for label, help text,
// required-ness and messages.
func ApplySpec(base Spec, options ...Option) Spec {
	cfg := config{spec: base.Clone()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg.spec.Clone()
}

// WithLabel sets the human readable label.
func WithLabel(label string) Option {
	return func(cfg *config) {
		cfg.spec.Label = label
	}
}

// WithHelpText sets the help text rendered next to the widget.
func WithHelpText(text string) Option {
	return func(cfg *config) {
		cfg.spec.HelpText = text
	}
}

// Required toggles whether a value must be supplied. Fields are required by
// default.
func Required(required bool) Option {
	return func(cfg *config) {
		cfg.spec.Required = required
	}
}

// Optional is shorthand for Required(false).
func Optional() Option {
	return Required(false)
}

// WithErrorMessage overrides the message used for code.
func WithErrorMessage(code, text string) Option {
	return func(cfg *config) {
		code = strings.TrimSpace(code)
		if code == "" {
			return
		}
		if cfg.spec.ErrorMessages == nil {
			cfg.spec.ErrorMessages = make(map[string]string)
		}
		cfg.spec.ErrorMessages[code] = text
	}
}

// WithErrorMessages overrides several messages at once.
func WithErrorMessages(messages map[string]string) Option {
	return func(cfg *config) {
		for code, text := range messages {
			WithErrorMessage(code, text)(cfg)
		}
	}
}

// WithWidget replaces the default widget.
func WithWidget(widget widgets.Widget) Option {
	return func(cfg *config) {
		if widget != nil {
			cfg.widget = widget
		}
	}
}

// WithMaxLength limits the number of characters.
func WithMaxLength(n int) Option {
	return func(cfg *config) {
		cfg.maxLength = n
	}
}

// WithMinLength requires a minimum number of characters.
func WithMinLength(n int) Option {
	return func(cfg *config) {
		cfg.minLength = n
	}
}

// WithoutStrip keeps leading and trailing whitespace.
func WithoutStrip() Option {
	return func(cfg *config) {
		cfg.noStrip = true
	}
}

// WithFormat validates text input as FormatEmail or FormatURL.
func WithFormat(format string) Option {
	return func(cfg *config) {
		cfg.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// WithMinValue sets the inclusive lower bound of an integer field.
func WithMinValue(n int) Option {
	return func(cfg *config) {
		cfg.minValue = &n
	}
}

// WithMaxValue sets the inclusive upper bound of an integer field.
func WithMaxValue(n int) Option {
	return func(cfg *config) {
		cfg.maxValue = &n
	}
}

// WithChoices sets the options offered by a choice field.
func WithChoices(choices ...widgets.Choice) Option {
	return func(cfg *config) {
		cfg.choices = append(cfg.choices, choices...)
	}
}
