package vanilla_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formfields/pkg/dictionaryfield"
	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/submission"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

func companyForm(t *testing.T) *forms.Form {
	t.Helper()
	return forms.MustNew([]forms.Entry{
		{Name: "parent_names", Field: dynamicinputs.MustNew(
			fields.NewChar(fields.WithWidget(widgets.Textarea{})),
			dynamicinputs.WithButton("Add company"),
			dynamicinputs.WithErrorMessage(fields.CodeRequired, "Custom error message"),
			dynamicinputs.WithHelpText("One <strong>per row</strong><script>x()</script>"),
		)},
		{Name: "editorial_management", Field: dynamicinputs.MustNew(
			dictionaryfield.MustNew([]dictionaryfield.Entry{
				{Name: "name", Field: fields.NewChar()},
				{Name: "title", Field: fields.NewChar()},
			}),
			dynamicinputs.Required(false),
		)},
	}, forms.WithName("company"))
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRender_Unbound(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.Render(testsupport.Context(), companyForm(t).Unbound(), render.RenderOptions{
		Action: "/companies",
		Hidden: map[string]string{"_csrf": "token"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<form class="formfields-form" method="post" action="/companies" data-form="company">`,
		`<input type="hidden" name="_csrf" value="token">`,
		"<label>Parent names <span class=\"required\">*</span></label>",
		"<label>Editorial management</label>",
		">Add company</button>",
		`name="editorial_management__title"`,
		"One <strong>per row</strong>",
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>x()") {
		t.Fatalf("expected help text to be sanitized\n%s", html)
	}
	if got := strings.Count(html, "dynamicinputs-row"); got != 2 {
		t.Fatalf("expected one row per dynamic input, got %d", got)
	}
	if strings.Contains(html, "formfields-errors") {
		t.Fatalf("unbound form must not render errors\n%s", html)
	}
}

func TestRender_BoundErrors(t *testing.T) {
	renderer := newRenderer(t)
	data := submission.New()
	data.SetList("parent_names", nil)
	data.Add("editorial_management__name", "Ada")
	data.Add("editorial_management__title", "")

	extra := render.MapErrorPayload(companyForm(t).Keys(), map[string][]string{
		"/editorial_management/0/name": {"Already on another board"},
		"base":                         {"Company locked"},
	}).Apply(nil)

	out, err := renderer.Render(testsupport.Context(), companyForm(t).Bind(data), render.RenderOptions{Errors: extra})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<li>Custom error message</li>",
		"<li>Already on another board</li><li>This field is required.</li>",
		`<ul class="formfields-errors"><li>Company locked</li></ul>`,
		`value="Ada"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output\n%s", want, html)
		}
	}
	if got := strings.Count(html, "has-errors"); got != 2 {
		t.Fatalf("expected both fields flagged, got %d", got)
	}
}

func TestRender_MethodOverrideAndOnly(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithClass("form", "card dynamicinputs-x"))

	out, err := renderer.Render(testsupport.Context(), companyForm(t).Unbound(), render.RenderOptions{
		Method:      "patch",
		SubmitLabel: "Save",
		Only:        []string{"editorial_management"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `<form class="formfields-form card" method="post"`) {
		t.Fatalf("expected post form with extra class\n%s", html)
	}
	if !strings.Contains(html, `<input type="hidden" name="_method" value="PATCH">`) {
		t.Fatalf("expected method override\n%s", html)
	}
	if strings.Contains(html, "parent_names") {
		t.Fatalf("expected parent_names to be filtered out\n%s", html)
	}
	if !strings.Contains(html, ">Save</button>") {
		t.Fatalf("expected submit label\n%s", html)
	}
}

func TestRender_InlineAssets(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithInlineAssets(true, true))

	out, err := renderer.Render(testsupport.Context(), companyForm(t).Unbound(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<style>.formfields-form") || !strings.Contains(html, "<script>(function ()") {
		t.Fatalf("expected inline assets\n%s", html)
	}
}

func TestRender_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"form.tmpl": {Data: []byte(`{% for field in fields %}[{{ field.name }}]{% endfor %}`)},
	}
	renderer := newRenderer(t, vanilla.WithTemplatesFS(files))

	out, err := renderer.Render(testsupport.Context(), companyForm(t).Unbound(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "[parent_names][editorial_management]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %q %q", renderer.Name(), renderer.ContentType())
	}
}
