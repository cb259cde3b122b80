package forms

import (
	"maps"
	"strings"

	"github.com/goliatone/go-formfields/pkg/logger"
)

// Option configures a Form.
type Option func(*config)

type config struct {
	name    string
	prefix  string
	initial map[string]any
	logger  logger.Logger
}

func newConfig(options []Option) config {
	cfg := config{logger: logger.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// WithName names the form in log lines.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = strings.TrimSpace(name)
	}
}

// WithPrefix prefixes every submitted key with prefix + "-", so several
// forms can share one HTML page.
func WithPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.prefix = strings.TrimSpace(prefix)
	}
}

// WithInitial sets the raw values shown by an unbound form, keyed by field
// name.
func WithInitial(initial map[string]any) Option {
	return func(cfg *config) {
		cfg.initial = maps.Clone(initial)
	}
}

// WithLogger sets the logger. Defaults to logger.Nop.
func WithLogger(l logger.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
