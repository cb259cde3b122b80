package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, *forms.Bound, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryLookup(t *testing.T) {
	registry, err := render.NewRegistry(
		stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"},
		stubRenderer{name: "tui", contentType: "application/x-www-form-urlencoded"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}

	def, err := registry.Lookup("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("expected first registered renderer as default, got %v, %v", def, err)
	}
	got, err := registry.Lookup("tui")
	if err != nil || got.Name() != "tui" {
		t.Fatalf("lookup tui: %v, %v", got, err)
	}
	if _, err := registry.Lookup("json"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}

	if diff := cmp.Diff([]string{"vanilla", "tui"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryForContentType(t *testing.T) {
	registry, err := render.NewRegistry(
		stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"},
		stubRenderer{name: "tui", contentType: "application/x-www-form-urlencoded"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	got, ok := registry.ForContentType("TEXT/HTML")
	if !ok || got.Name() != "vanilla" {
		t.Fatalf("expected vanilla for text/html, got %v, %v", got, ok)
	}
	if _, ok := registry.ForContentType("application/json"); ok {
		t.Fatalf("expected no renderer for application/json")
	}
	if _, ok := registry.ForContentType(""); ok {
		t.Fatalf("expected no renderer for an empty content type")
	}

	empty, err := render.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if _, err := empty.Lookup(""); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected empty registry lookup to fail, got %v", err)
	}
}
