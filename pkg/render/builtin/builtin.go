// Package builtin bundles the templates used by the composite fields and a
// lazily built engine shared by every field that was not given its own
// renderer.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

//go:embed templates/dynamicinputs/*.tmpl templates/dictionaryfield/*.tmpl
var embeddedTemplates embed.FS

// Template names, relative to TemplatesFS and without extension.
const (
	DynamicInputTemplate = "dynamicinputs/dynamic_input"
	DictionaryTemplate   = "dictionaryfield/dictionary"
)

// SanitizeFilter is the template filter that runs SanitizeHelpText.
const SanitizeFilter = "sanitize_help"

var (
	defaultOnce   sync.Once
	defaultEngine template.TemplateRenderer
	defaultErr    error

	filterOnce sync.Once
	filterErr  error
)

// TemplatesFS exposes the embedded templates rooted at the template names.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Default returns the shared engine over TemplatesFS.
func Default() (template.TemplateRenderer, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = NewEngine()
	})
	return defaultEngine, defaultErr
}

// NewEngine builds a pongo2 engine over TemplatesFS. Options are applied
// after the bundle, so WithFS or WithBaseDir replace it with templates that
// use the same names.
func NewEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts := append([]gotemplate.Option{gotemplate.WithFS(TemplatesFS())}, options...)
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("builtin: %w", err)
	}

	filterOnce.Do(func() {
		filterErr = engine.RegisterFilter(SanitizeFilter, func(input any, _ any) (any, error) {
			text, _ := input.(string)
			return SanitizeHelpText(text), nil
		})
	})
	if filterErr != nil {
		return nil, fmt.Errorf("builtin: register %s filter: %w", SanitizeFilter, filterErr)
	}
	return engine, nil
}
