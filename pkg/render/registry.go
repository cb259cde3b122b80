package render

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned when a lookup names a renderer that was
// never registered.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry resolves renderers by name or by the media type they produce.
// Names keep registration order; the first registered renderer is the
// default.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	renderers map[string]Renderer
}

// NewRegistry registers each renderer in order.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer)}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the renderer called name. An empty name selects the
// default renderer.
func (r *Registry) Lookup(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		if len(r.order) == 0 {
			return nil, fmt.Errorf("%w: registry is empty", ErrUnknownRenderer)
		}
		name = r.order[0]
	}
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownRenderer, name, strings.Join(r.order, ", "))
	}
	return renderer, nil
}

// ForContentType returns the first registered renderer whose content type
// has the same media type as contentType. Parameters such as charset are
// ignored.
func (r *Registry) ForContentType(contentType string) (Renderer, bool) {
	want := mediaType(contentType)
	if want == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		renderer := r.renderers[name]
		if mediaType(renderer.ContentType()) == want {
			return renderer, true
		}
	}
	return nil, false
}

// Names lists the registered renderers in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

func mediaType(contentType string) string {
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return parsed
}
