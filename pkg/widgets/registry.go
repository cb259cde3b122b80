package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetEmail    = "email"
	WidgetURL      = "url"
	WidgetNumber   = "number"
	WidgetPassword = "password"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetHidden   = "hidden"
)

// longTextThreshold is the max_length above which a text column is edited
// with a textarea.
const longTextThreshold = 255

// Hint describes the column a widget is chosen for.
type Hint struct {
	Type      string
	Format    string
	Widget    string
	MaxLength int
	Choices   []Choice
}

// Matcher decides whether a widget should handle the supplied hint.
type Matcher func(hint Hint) bool

// Factory builds a widget for a hint.
type Factory func(hint Hint) Widget

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for column declarations based on an explicit
// widget name or registered matchers. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	factories map[string]Factory
}

// NewRegistry constructs a registry with the built-in widgets and matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.registerBuiltins()
	return reg
}

// RegisterFactory associates a widget name with a factory. The latest
// registration wins.
func (r *Registry) RegisterFactory(name string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := normalize(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[trimmed] = factory
}

// Register adds a matcher for the widget name with the provided priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := normalize(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a hint. An explicit Widget name is
// honoured before matcher evaluation.
func (r *Registry) Resolve(hint Hint) (string, bool) {
	if explicit := normalize(hint.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(hint) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves and instantiates the widget for hint. ok is false when the
// resolved name has no factory.
func (r *Registry) Build(hint Hint) (Widget, string, bool) {
	name, ok := r.Resolve(hint)
	if !ok {
		return nil, "", false
	}
	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()
	if factory == nil {
		return nil, name, false
	}
	return factory(hint), name, true
}

// Names returns the registered factory names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.RegisterFactory(WidgetText, func(Hint) Widget { return TextInput{} })
	r.RegisterFactory(WidgetTextarea, func(Hint) Widget { return Textarea{} })
	r.RegisterFactory(WidgetEmail, func(Hint) Widget { return TextInput{InputType: "email"} })
	r.RegisterFactory(WidgetURL, func(Hint) Widget { return TextInput{InputType: "url"} })
	r.RegisterFactory(WidgetNumber, func(Hint) Widget { return TextInput{InputType: "number"} })
	r.RegisterFactory(WidgetPassword, func(Hint) Widget { return TextInput{InputType: "password"} })
	r.RegisterFactory(WidgetHidden, func(Hint) Widget { return HiddenInput{} })
	r.RegisterFactory(WidgetCheckbox, func(Hint) Widget { return CheckboxInput{} })
	r.RegisterFactory(WidgetSelect, func(hint Hint) Widget {
		return Select{Choices: append([]Choice(nil), hint.Choices...)}
	})

	r.Register(WidgetCheckbox, 90, func(hint Hint) bool {
		return normalize(hint.Type) == "boolean"
	})
	r.Register(WidgetSelect, 80, func(hint Hint) bool {
		return len(hint.Choices) > 0
	})
	r.Register(WidgetEmail, 70, func(hint Hint) bool {
		return normalize(hint.Format) == "email"
	})
	r.Register(WidgetURL, 65, func(hint Hint) bool {
		return normalize(hint.Format) == "url"
	})
	r.Register(WidgetNumber, 60, func(hint Hint) bool {
		return normalize(hint.Type) == "integer"
	})
	r.Register(WidgetTextarea, 50, func(hint Hint) bool {
		return normalize(hint.Type) == "text" || hint.MaxLength > longTextThreshold
	})
	r.Register(WidgetText, 0, func(Hint) bool {
		return true
	})
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
