package schema_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/dictionaryfield"
	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

func TestColumn_Check(t *testing.T) {
	cases := []struct {
		name string
		want []string
	}{
		{name: "", want: []string{schema.CheckNameRequired}},
		{name: "phones_", want: []string{schema.CheckNameUnderscore}},
		{name: "home__phone", want: []string{schema.CheckNameSeparator}},
		{name: "pk", want: []string{schema.CheckNameReserved}},
		{name: "phones", want: []string{}},
	}
	for _, tc := range cases {
		column := schema.Column{Name: tc.name, Model: "contact"}
		if diff := cmp.Diff(tc.want, checkIDs(column.Check())); diff != "" {
			t.Fatalf("%q: check ids mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCheckMessage_Error(t *testing.T) {
	msg := schema.CheckMessage{Level: schema.LevelError, ID: "fields.E001", Msg: "bad", Hint: "fix it", Object: "contact.phones_"}
	want := "contact.phones_: (fields.E001) bad\n\tHINT: fix it"
	if got := msg.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	warn := schema.CheckMessage{Level: schema.LevelWarning}
	if got := schema.Serious([]schema.CheckMessage{msg, warn}); len(got) != 1 {
		t.Fatalf("expected one serious message, got %d", len(got))
	}
}

func TestLeafColumn_BuildField(t *testing.T) {
	max := 5
	cases := []struct {
		column schema.LeafColumn
		check  func(t *testing.T, field fields.Field)
	}{
		{
			column: schema.LeafColumn{Column: schema.Column{Name: "note"}, Type: schema.TypeText, MaxLength: 20},
			check: func(t *testing.T, field fields.Field) {
				html, err := field.Render("note", "hi")
				if err != nil || !strings.Contains(html, "<textarea") {
					t.Fatalf("expected textarea, got %q (%v)", html, err)
				}
			},
		},
		{
			column: schema.LeafColumn{Column: schema.Column{Name: "age"}, Type: schema.TypeInteger, MaxValue: &max},
			check: func(t *testing.T, field fields.Field) {
				if _, ok := field.(*fields.IntegerField); !ok {
					t.Fatalf("expected integer field, got %T", field)
				}
				if _, err := field.Clean("9"); err == nil {
					t.Fatalf("expected max_value error")
				}
			},
		},
		{
			column: schema.LeafColumn{Column: schema.Column{Name: "agree", Blank: true}, Type: schema.TypeBoolean},
			check: func(t *testing.T, field fields.Field) {
				if _, ok := field.(*fields.BooleanField); !ok {
					t.Fatalf("expected boolean field, got %T", field)
				}
			},
		},
		{
			column: schema.LeafColumn{Column: schema.Column{Name: "kind"}, Choices: []widgets.Choice{{Value: "home", Label: "Home"}}},
			check: func(t *testing.T, field fields.Field) {
				if _, ok := field.(*fields.ChoiceField); !ok {
					t.Fatalf("expected choice field, got %T", field)
				}
			},
		},
	}
	for _, tc := range cases {
		field, err := tc.column.BuildField()
		if err != nil {
			t.Fatalf("%s: BuildField: %v", tc.column.Name, err)
		}
		if got, want := field.Spec().Label, tc.column.DisplayLabel(); got != want {
			t.Fatalf("%s: expected label %q, got %q", tc.column.Name, want, got)
		}
		tc.check(t, field)
	}
}

func TestLeafColumn_UnknownType(t *testing.T) {
	column := &schema.LeafColumn{Column: schema.Column{Name: "when"}, Type: "datetime"}
	if diff := cmp.Diff([]string{schema.CheckUnknownType}, checkIDs(column.Check())); diff != "" {
		t.Fatalf("check ids mismatch (-want +got):\n%s", diff)
	}
	if _, err := column.BuildField(); err == nil {
		t.Fatalf("expected build error")
	}
}

func TestModel_FormFromDeclarations(t *testing.T) {
	model := &schema.Model{
		Name: "contact",
		Columns: []schema.Declaration{
			&schema.LeafColumn{Column: schema.Column{Name: "name"}, Type: schema.TypeString},
			schema.NewArrayField("Phones", schema.WithName("phones"), schema.WithInnerField(fields.NewChar())),
			&schema.DictionaryColumn{
				Column: schema.Column{Name: "address", Blank: true},
				Fields: []schema.Declaration{
					&schema.LeafColumn{Column: schema.Column{Name: "street"}},
					&schema.LeafColumn{Column: schema.Column{Name: "city"}},
				},
			},
		},
	}

	form, err := model.Form()
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if form.Name() != "contact" {
		t.Fatalf("expected form name contact, got %q", form.Name())
	}

	bound := form.Bind(testsupport.Submission(
		"name", "Ada",
		"phones", "555-0100",
		"phones", "",
		"phones", "555-0101",
		"address__street", "1 Main St",
		"address__city", "London",
	))
	if !bound.IsValid() {
		t.Fatalf("expected valid form, errors: %#v", bound.Errors())
	}
	want := map[string]any{
		"name":    "Ada",
		"phones":  []any{"555-0100", "555-0101"},
		"address": map[string]any{"street": "1 Main St", "city": "London"},
	}
	if diff := cmp.Diff(want, bound.CleanedData()); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_CheckDuplicatesAndFormFailure(t *testing.T) {
	model := &schema.Model{
		Name: "contact",
		Columns: []schema.Declaration{
			&schema.LeafColumn{Column: schema.Column{Name: "name"}},
			&schema.LeafColumn{Column: schema.Column{Name: "name"}},
			schema.NewArrayField("Phones", schema.WithName("phones")),
		},
	}
	msgs := model.Check()
	want := []string{schema.CheckDuplicateName, dynamicinputs.CheckFieldRequired}
	if diff := cmp.Diff(want, checkIDs(msgs)); diff != "" {
		t.Fatalf("check ids mismatch (-want +got):\n%s", diff)
	}
	if msgs[0].Object != "contact.name" {
		t.Fatalf("expected object contact.name, got %q", msgs[0].Object)
	}

	if _, err := model.Form(); !errors.Is(err, schema.ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
}

func TestLoadFS_YAML(t *testing.T) {
	store, err := schema.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"contact"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	model, ok := store.Model("contact")
	if !ok {
		t.Fatalf("contact model missing")
	}
	if got := len(model.Columns); got != 4 {
		t.Fatalf("expected 4 columns, got %d", got)
	}

	phones, ok := model.Columns[1].(*schema.ArrayField)
	if !ok {
		t.Fatalf("expected array declaration, got %T", model.Columns[1])
	}
	if phones.Button != "Add phone" || phones.DefaultCount != 2 || phones.MaxCount != 5 {
		t.Fatalf("unexpected array settings %#v", phones)
	}
	if inner, ok := phones.Field.(*fields.CharField); !ok || inner.MaxLength() != 100 {
		t.Fatalf("unexpected inner field %#v", phones.Field)
	}

	address, ok := model.Columns[2].(*schema.DictionaryColumn)
	if !ok {
		t.Fatalf("expected dictionary declaration, got %T", model.Columns[2])
	}
	field, err := address.BuildField()
	if err != nil {
		t.Fatalf("BuildField: %v", err)
	}
	dict, ok := field.(*dictionaryfield.Field)
	if !ok {
		t.Fatalf("expected dictionary field, got %T", field)
	}
	if diff := cmp.Diff([]string{"address__street", "address__zip"}, dict.Keys("address")); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	msgs := model.Check()
	if diff := cmp.Diff([]string{dynamicinputs.CheckFieldRequired}, checkIDs(msgs)); diff != "" {
		t.Fatalf("check ids mismatch (-want +got):\n%s", diff)
	}
	if msgs[0].Object != "contact.nested" {
		t.Fatalf("unexpected object %q", msgs[0].Object)
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := schema.LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
