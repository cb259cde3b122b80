package fields_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

func cleanErr(t *testing.T, field fields.Field, raw any) *fields.ValidationError {
	t.Helper()
	_, err := field.Clean(raw)
	if err == nil {
		t.Fatalf("expected Clean(%v) to fail", raw)
	}
	var verr *fields.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return verr
}

func TestCharField_Clean(t *testing.T) {
	field := fields.NewChar(fields.WithMaxLength(5))

	got, err := field.Clean("  abc ")
	if err != nil || got != "abc" {
		t.Fatalf("expected stripped value, got %v (%v)", got, err)
	}

	verr := cleanErr(t, field, "abcdefg")
	want := []string{"Ensure this value has at most 5 characters (it has 7)."}
	if diff := cmp.Diff(want, verr.Texts()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	if !cleanErr(t, field, "   ").HasCode(fields.CodeRequired) {
		t.Fatalf("expected required error for blank input")
	}

	optional := fields.NewChar(fields.Optional(), fields.WithoutStrip())
	if got, err := optional.Clean(" x "); err != nil || got != " x " {
		t.Fatalf("expected unstripped value, got %q (%v)", got, err)
	}
	if got, err := optional.Clean(""); err != nil || got != "" {
		t.Fatalf("expected empty optional value, got %v (%v)", got, err)
	}
}

func TestCharField_ReportsEveryConstraint(t *testing.T) {
	field := fields.NewChar(fields.WithMinLength(10), fields.WithFormat(fields.FormatEmail))
	verr := cleanErr(t, field, "nope")
	codes := make([]string, 0)
	for _, msg := range verr.Messages() {
		codes = append(codes, msg.Code)
	}
	if diff := cmp.Diff([]string{fields.CodeMinLength, fields.CodeEmail}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegerField_Clean(t *testing.T) {
	field := fields.NewInteger(fields.WithMinValue(1), fields.WithMaxValue(10))

	if got, err := field.Clean(" 7 "); err != nil || got != 7 {
		t.Fatalf("expected 7, got %v (%v)", got, err)
	}
	if diff := cmp.Diff([]string{"Enter a whole number."}, cleanErr(t, field, "7.5").Texts()); diff != "" {
		t.Fatalf("invalid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ensure this value is less than or equal to 10."}, cleanErr(t, field, "11").Texts()); diff != "" {
		t.Fatalf("max mismatch (-want +got):\n%s", diff)
	}

	custom := fields.NewInteger(fields.WithErrorMessage(fields.CodeInvalid, "Numbers only."))
	if diff := cmp.Diff([]string{"Numbers only."}, cleanErr(t, custom, "x").Texts()); diff != "" {
		t.Fatalf("custom mismatch (-want +got):\n%s", diff)
	}

	optional := fields.NewInteger(fields.Optional())
	if got, err := optional.Clean(""); err != nil || got != nil {
		t.Fatalf("expected nil for empty optional integer, got %v (%v)", got, err)
	}
}

func TestBooleanField(t *testing.T) {
	field := fields.NewBoolean(fields.Optional())
	data := testsupport.Submission("agree", "on")

	if got := field.ValueFromData(data, "agree"); got != "on" {
		t.Fatalf("expected on, got %v", got)
	}
	if got := field.ValueFromData(data, "missing"); got != "" {
		t.Fatalf("expected empty value for absent checkbox, got %v", got)
	}
	if got, _ := field.Clean("on"); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if got, _ := field.Clean(""); got != false {
		t.Fatalf("expected false, got %v", got)
	}

	required := fields.NewBoolean()
	if !cleanErr(t, required, "").HasCode(fields.CodeRequired) {
		t.Fatalf("required checkbox must be checked")
	}
}

func TestChoiceField(t *testing.T) {
	field := fields.NewChoice(fields.WithChoices(
		widgets.Choice{Value: "home", Label: "Home"},
		widgets.Choice{Value: "work", Label: "Work"},
	))
	if got, err := field.Clean("work"); err != nil || got != "work" {
		t.Fatalf("expected work, got %v (%v)", got, err)
	}
	want := []string{"Select a valid choice. mobile is not one of the available choices."}
	if diff := cmp.Diff(want, cleanErr(t, field, "mobile").Texts()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	html, err := field.Render("kind", "home")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff("<select name=\"kind\">\n  <option value=\"home\" selected>Home</option>\n  <option value=\"work\">Work</option>\n</select>", html); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaf_ValuesFromData(t *testing.T) {
	field := fields.NewChar()
	data := testsupport.Submission("phones", "1", "phones", "", "phones", "3")

	if diff := cmp.Diff([]any{"1", "", "3"}, field.ValuesFromData(data, "phones")); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := field.ValueFromData(data, "phones"); got != "3" {
		t.Fatalf("expected last value, got %v", got)
	}
	if got := field.ValuesFromData(data, "missing"); got != nil {
		t.Fatalf("expected nil rows, got %v", got)
	}
}

func TestSpec_IsACopy(t *testing.T) {
	field := fields.NewChar(fields.WithLabel("Phone"), fields.WithErrorMessage(fields.CodeRequired, "Need it"))
	spec := field.Spec()
	spec.ErrorMessages[fields.CodeRequired] = "changed"
	spec.Label = "changed"

	again := field.Spec()
	if again.Label != "Phone" || again.Message(fields.CodeRequired) != "Need it" {
		t.Fatalf("Spec should return an independent copy, got %#v", again)
	}
}

func TestValidationError_Tree(t *testing.T) {
	root := &fields.ValidationError{}
	if root.Err() != nil || !root.Empty() {
		t.Fatalf("empty tree should not be an error")
	}

	row := (&fields.ValidationError{}).
		SetField("name", fields.NewError(fields.CodeMaxLength, "too long")).
		SetField("title", fields.RequiredError(""))
	root.SetItem(2, row)
	root.SetItem(0, fields.NewError(fields.CodeInvalid, "bad"))
	root.SetItem(1, nil)

	if diff := cmp.Diff([]int{0, 2}, root.ItemIndexes()); diff != "" {
		t.Fatalf("indexes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "title"}, root.Item(2).FieldNames()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	if !root.HasCode(fields.CodeRequired) {
		t.Fatalf("expected nested required code")
	}
	want := map[string][]string{
		"people":        {"bad"},
		"people__name":  {"too long"},
		"people__title": {"This field is required."},
	}
	if diff := cmp.Diff(want, root.Flatten("people")); diff != "" {
		t.Fatalf("flatten mismatch (-want +got):\n%s", diff)
	}
	if got := root.Error(); got != "bad; too long; This field is required." {
		t.Fatalf("unexpected error string %q", got)
	}

	plain := fields.AsValidationError(errors.New("boom"))
	if !plain.HasCode(fields.CodeInvalid) {
		t.Fatalf("plain errors should become invalid messages")
	}
}

func TestCanRepeatAndKeys(t *testing.T) {
	if !fields.CanRepeat(fields.NewChar()) {
		t.Fatalf("leaf fields repeat")
	}
	if fields.CanRepeat(nil) {
		t.Fatalf("nil cannot repeat")
	}
	if fields.CanRepeat(fields.NewBoolean(fields.Optional())) {
		t.Fatalf("checkboxes are omitted when unchecked and cannot repeat")
	}
	if diff := cmp.Diff([]string{"a"}, fields.KeysOf(fields.NewChar(), "a")); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := fields.Join("a", "b"); got != "a__b" {
		t.Fatalf("unexpected join %q", got)
	}
}
