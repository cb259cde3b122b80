package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/logger"
	"github.com/goliatone/go-formfields/pkg/render"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

const formTemplate = "form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	inlineScript     bool
	classes          map[string]string
	logger           logger.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain "form.tmpl".
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInlineAssets embeds the stylesheet and the row script in the output.
// Callers serving AssetsFS themselves leave it off.
func WithInlineAssets(styles, script bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = styles
		cfg.inlineScript = script
	}
}

// WithClass appends extra classes to one chrome slot ("form", "field",
// "errors", "help", "actions").
func WithClass(slot, classes string) Option {
	return func(cfg *config) {
		slot = strings.TrimSpace(slot)
		extra := sanitizeClassList(classes)
		if slot == "" || extra == "" {
			return
		}
		if current := cfg.classes[slot]; current != "" {
			cfg.classes[slot] = current + " " + extra
			return
		}
		cfg.classes[slot] = extra
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

// Renderer renders bound forms as HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles bool
	inlineScript bool
	classes      map[string]string
	logger       logger.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		classes:    defaultClasses(),
		logger:     logger.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithSetName("vanilla"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		inlineStyles: cfg.inlineStyles,
		inlineScript: cfg.inlineScript,
		classes:      cfg.classes,
		logger:       cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(_ context.Context, form *forms.Bound, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}

	errs := mergeErrors(form.Errors(), options.Errors)

	fieldData := make([]map[string]any, 0)
	for _, field := range form.Fields() {
		if !options.Includes(field.Name) {
			continue
		}
		data, err := fieldContext(field, errs)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fieldData = append(fieldData, data)
	}

	method := options.MethodOrDefault()
	hidden := options.Hidden
	if method != "GET" && method != "POST" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", method))
		method = "POST"
	}
	hiddenData := make([]map[string]any, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		hiddenData = append(hiddenData, map[string]any{"name": field.Name, "value": field.Value})
	}

	payload := map[string]any{
		"form_name":     form.Form().Name(),
		"action":        strings.TrimSpace(options.Action),
		"method":        strings.ToLower(method),
		"submit_label":  options.SubmitLabelOrDefault(),
		"hidden_fields": hiddenData,
		"form_errors":   errs[forms.NonFieldErrors],
		"fields":        fieldData,
		"classes":       r.classes,
	}
	if r.inlineStyles {
		payload["stylesheet"] = readAsset(StylesheetName)
	}
	if r.inlineScript {
		payload["script"] = readAsset(RuntimeScriptName)
	}

	result, err := r.templates.RenderTemplate(formTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}

	r.logger.Debug("form rendered", "renderer", r.Name(), "form", form.Form().Name(), "fields", len(fieldData))
	return []byte(result), nil
}
