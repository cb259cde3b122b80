package dynamicinputs

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/render/template"
)

// Defaults applied when the matching option is omitted.
const (
	DefaultMaxCount     = 10
	DefaultDefaultCount = 1
	DefaultButton       = "Add row"
)

// Option configures a dynamic input field.
type Option func(*config)

type config struct {
	label        string
	helpText     string
	required     bool
	maxCount     int
	defaultCount int
	button       string
	messages     map[string]string
	renderer     template.TemplateRenderer
}

func newConfig(options []Option) config {
	cfg := config{
		required:     true,
		maxCount:     DefaultMaxCount,
		defaultCount: DefaultDefaultCount,
		button:       DefaultButton,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// WithMaxCount caps the number of rows a user can add.
func WithMaxCount(n int) Option {
	return func(cfg *config) {
		cfg.maxCount = n
	}
}

// WithDefaultCount sets the number of empty rows shown when nothing was
// submitted.
func WithDefaultCount(n int) Option {
	return func(cfg *config) {
		cfg.defaultCount = n
	}
}

// WithButton sets the label of the add row control.
func WithButton(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.button = trimmed
		}
	}
}

// Required toggles whether at least one non-blank row must be submitted.
// This overrides the inner field's own setting for the list as a whole.
func Required(required bool) Option {
	return func(cfg *config) {
		cfg.required = required
	}
}

// WithLabel sets the label of the list.
func WithLabel(label string) Option {
	return func(cfg *config) {
		cfg.label = label
	}
}

// WithHelpText sets the help text of the list.
func WithHelpText(text string) Option {
	return func(cfg *config) {
		cfg.helpText = text
	}
}

// WithErrorMessage overrides the message used for code at the list level.
func WithErrorMessage(code, text string) Option {
	return func(cfg *config) {
		code = strings.TrimSpace(code)
		if code == "" {
			return
		}
		if cfg.messages == nil {
			cfg.messages = make(map[string]string)
		}
		cfg.messages[code] = text
	}
}

// WithTemplateRenderer renders rows with renderer instead of the shared
// builtin engine. The renderer must provide the
// "dynamicinputs/dynamic_input" template.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		cfg.renderer = renderer
	}
}
