// Package formfields bundles the dynamic input and dictionary field form
// widgets with the declaration layer, renderers and wire description that
// surround them. Most callers import the sub-packages directly; this package
// offers shortcuts for the common path of loading a model and rendering it.
package formfields

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/render/builtin"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// RenderOptions describes per-request overrides such as the action URL,
// hidden inputs and server-side errors.
type RenderOptions = render.RenderOptions

// ErrorMapping aliases render.ErrorMapping for callers translating external
// error payloads.
type ErrorMapping = render.ErrorMapping

// LoadForm reads a model declaration file and derives the form of the named
// model. Declaration checks must pass.
func LoadForm(path, model string, options ...forms.Option) (*forms.Form, error) {
	store, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, ok := store.Model(model)
	if !ok {
		return nil, fmt.Errorf("formfields: model %q not declared in %s", model, path)
	}
	return m.Form(options...)
}

// RenderHTML renders bound with the vanilla renderer.
func RenderHTML(ctx context.Context, bound *forms.Bound, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, bound, opts)
}

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// WidgetTemplates exposes the dynamic input and dictionary field templates.
func WidgetTemplates() fs.FS {
	return builtin.TemplatesFS()
}

// AssetsFS exposes the stylesheet and the row script dynamic inputs need in
// the browser.
//
// Typical mount:
//
//	mux.Handle("/formfields/",
//	  http.StripPrefix("/formfields/",
//	    http.FileServerFS(formfields.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
