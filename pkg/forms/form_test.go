package forms_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/dictionaryfield"
	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/logger"
	"github.com/goliatone/go-formfields/pkg/submission"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

func nameTitle() *dictionaryfield.Field {
	return dictionaryfield.MustNew([]dictionaryfield.Entry{
		{Name: "name", Field: fields.NewChar()},
		{Name: "title", Field: fields.NewChar()},
	})
}

func sampleForm(t *testing.T, opts ...forms.Option) *forms.Form {
	t.Helper()
	form, err := forms.New([]forms.Entry{
		{Name: "parent_names", Field: dynamicinputs.MustNew(
			fields.NewChar(fields.WithWidget(widgets.Textarea{})),
			dynamicinputs.WithMaxCount(10),
			dynamicinputs.WithButton("Add company"),
			dynamicinputs.WithErrorMessage(fields.CodeRequired, "Custom error message"),
		)},
		{Name: "editorial_management", Field: dynamicinputs.MustNew(
			nameTitle(),
			dynamicinputs.Required(false),
		)},
	}, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func nestedForm(t *testing.T) *forms.Form {
	t.Helper()
	return forms.MustNew([]forms.Entry{
		{Name: "dict_field", Field: dictionaryfield.MustNew([]dictionaryfield.Entry{
			{Name: "dynamic_field", Field: dynamicinputs.MustNew(nameTitle())},
		})},
	})
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	cases := map[string][]forms.Entry{
		"no name":   {{Name: "", Field: fields.NewChar()}},
		"nil field": {{Name: "a"}},
		"duplicate": {{Name: "a", Field: fields.NewChar()}, {Name: "a", Field: fields.NewChar()}},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := forms.New(entries); !errors.Is(err, forms.ErrInvalidEntry) {
				t.Fatalf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}

func TestBind_SkipsBlankRows(t *testing.T) {
	form := sampleForm(t)
	data := testsupport.MustParseSubmission(t, "parent_names=one&parent_names=two&parent_names=")

	bound := form.Bind(data)
	if !bound.IsValid() {
		t.Fatalf("expected valid form, errors: %v", bound.Errors())
	}
	want := map[string]any{
		"parent_names":         []any{"one", "two"},
		"editorial_management": []any{},
	}
	if diff := cmp.Diff(want, bound.CleanedData()); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_EmptyRowsKeepOptionalList(t *testing.T) {
	form := sampleForm(t)

	data := submission.New()
	data.SetList("parent_names", nil)
	data.SetList("editorial_management__name", nil)
	data.SetList("editorial_management__title", nil)

	bound := form.Bind(data)
	if bound.IsValid() {
		t.Fatalf("expected required dynamic input to fail")
	}
	want := map[string]any{"editorial_management": []any{}}
	if diff := cmp.Diff(want, bound.CleanedData()); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]string{"parent_names": {"Custom error message"}}, bound.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_NestedRecords(t *testing.T) {
	form := nestedForm(t)

	data := submission.New()
	for i := 0; i < 5; i++ {
		data.Add("dict_field__dynamic_field__name", "name"+string(rune('0'+i)))
		data.Add("dict_field__dynamic_field__title", "title"+string(rune('0'+i)))
	}

	bound := form.Bind(data)
	if !bound.IsValid() {
		t.Fatalf("expected valid form, errors: %v", bound.Errors())
	}

	records, _ := bound.CleanedData()["dict_field"].(map[string]any)["dynamic_field"].([]any)
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	if diff := cmp.Diff(map[string]any{"name": "name3", "title": "title3"}, records[3]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_RequiredGroupAllBlank(t *testing.T) {
	form := forms.MustNew([]forms.Entry{{Name: "contact", Field: nameTitle()}})

	bound := form.Bind(testsupport.Submission("contact__name", "", "contact__title", ""))
	want := map[string][]string{"contact": {"This field is required."}}
	if diff := cmp.Diff(want, bound.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_ErrorsUseSubmittedKeys(t *testing.T) {
	form := sampleForm(t, forms.WithPrefix("company"))

	bound := form.Bind(testsupport.Submission(
		"company-parent_names", "Acme",
		"company-editorial_management__name", "Ada",
		"company-editorial_management__title", "",
	))
	want := map[string][]string{"company-editorial_management__title": {"This field is required."}}
	if diff := cmp.Diff(want, bound.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	field, ok := bound.Field("editorial_management")
	if !ok {
		t.Fatalf("expected bound field")
	}
	if diff := cmp.Diff([]string{"This field is required."}, field.Errors); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestUnbound_RendersDefaultRows(t *testing.T) {
	form := sampleForm(t)
	unbound := form.Unbound()

	if unbound.IsBound() || unbound.IsValid() {
		t.Fatalf("expected unbound, invalid form")
	}
	field, ok := unbound.Field("parent_names")
	if !ok {
		t.Fatalf("expected field")
	}
	if field.Label != "Parent names" {
		t.Fatalf("unexpected label %q", field.Label)
	}

	out := field.String()
	if got := strings.Count(out, "dynamicinputs-row"); got != 1 {
		t.Fatalf("expected 1 row, got %d\n%s", got, out)
	}
	if got := strings.Count(out, "<textarea"); got != 1 {
		t.Fatalf("expected 1 widget, got %d\n%s", got, out)
	}
}

func TestUnbound_UsesInitial(t *testing.T) {
	form := sampleForm(t, forms.WithInitial(map[string]any{"parent_names": []any{"Acme", "Globex"}}))

	field, _ := form.Unbound().Field("parent_names")
	out := field.String()
	if got := strings.Count(out, "dynamicinputs-row"); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if !strings.Contains(out, "Globex</textarea>") {
		t.Fatalf("expected initial value\n%s", out)
	}
}

func TestKeys(t *testing.T) {
	form := sampleForm(t)
	want := []string{"parent_names", "editorial_management__name", "editorial_management__title"}
	if diff := cmp.Diff(want, form.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

type company struct {
	Parents []string `form:"parent_names"`
	Editors []struct {
		Name  string `form:"name"`
		Title string `form:"title"`
	} `form:"editorial_management"`
}

func TestDecode(t *testing.T) {
	form := sampleForm(t)
	bound := form.Bind(testsupport.Submission(
		"parent_names", "Acme",
		"editorial_management__name", "Ada",
		"editorial_management__title", "Editor",
	))

	var got company
	if err := bound.Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"Acme"}, got.Parents); diff != "" {
		t.Fatalf("parents mismatch (-want +got):\n%s", diff)
	}
	if len(got.Editors) != 1 || got.Editors[0].Name != "Ada" || got.Editors[0].Title != "Editor" {
		t.Fatalf("unexpected editors %+v", got.Editors)
	}

	if err := form.Bind(submission.New()).Decode(&got); !errors.Is(err, forms.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if err := form.Unbound().Decode(&got); !errors.Is(err, forms.ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
}

func TestBind_LogsValidation(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})
	form := sampleForm(t, forms.WithLogger(log), forms.WithName("company"))

	form.Bind(submission.New()).IsValid()

	out := buf.String()
	if !strings.Contains(out, "form validated") || !strings.Contains(out, "company") {
		t.Fatalf("expected validation log line, got %q", out)
	}
}
