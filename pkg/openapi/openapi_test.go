package openapi_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formfields/pkg/dictionaryfield"
	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

func contactForm(t *testing.T) *forms.Form {
	t.Helper()
	return forms.MustNew([]forms.Entry{
		{Name: "name", Field: fields.NewChar(fields.WithMaxLength(50))},
		{Name: "phones", Field: dynamicinputs.MustNew(
			fields.NewChar(fields.WithMaxLength(20)),
			dynamicinputs.WithMaxCount(2),
		)},
		{Name: "address", Field: dictionaryfield.MustNew([]dictionaryfield.Entry{
			{Name: "street", Field: fields.NewChar()},
			{Name: "kind", Field: fields.NewChoice(fields.WithChoices(
				widgets.Choice{Value: "home", Label: "Home"},
				widgets.Choice{Value: "work", Label: "Work"},
			))},
		})},
		{Name: "people", Field: dynamicinputs.MustNew(dictionaryfield.MustNew([]dictionaryfield.Entry{
			{Name: "age", Field: fields.NewInteger(fields.Optional())},
		}))},
	}, forms.WithName("contact"))
}

func TestSchema_FlatKeys(t *testing.T) {
	schema := openapi.Schema(contactForm(t))

	if err := schema.Validate(context.Background()); err != nil {
		t.Fatalf("schema should be valid: %v", err)
	}

	var keys []string
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	want := []string{"address__kind", "address__street", "name", "people__age", "phones"}
	if diff := cmp.Diff(want, keys, cmpSorted); diff != "" {
		t.Fatalf("property keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	phones := schema.Properties["phones"].Value
	if !phones.Type.Is(openapi3.TypeArray) {
		t.Fatalf("phones should be an array, got %v", phones.Type)
	}
	if phones.MaxItems == nil || *phones.MaxItems != 2 {
		t.Fatalf("expected maxItems 2, got %v", phones.MaxItems)
	}
	if phones.Items.Value.MaxLength == nil || *phones.Items.Value.MaxLength != 20 {
		t.Fatalf("expected item maxLength 20")
	}

	if !schema.Properties["people__age"].Value.Type.Is(openapi3.TypeArray) {
		t.Fatalf("keys under a dynamic input should be arrays")
	}
	if got := schema.Properties["address__kind"].Value.Enum; len(got) != 2 {
		t.Fatalf("expected two enum values, got %v", got)
	}
}

func TestRequestBody_ContentType(t *testing.T) {
	body := openapi.RequestBody(contactForm(t))
	if !body.Required {
		t.Fatalf("request body should be required")
	}
	media := body.Content.Get(openapi.ContentType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		t.Fatalf("missing %s content", openapi.ContentType)
	}
	if body.Description != "contact" {
		t.Fatalf("unexpected description %q", body.Description)
	}
}

func TestValidateSubmission(t *testing.T) {
	schema := openapi.Schema(contactForm(t))

	ok := testsupport.Submission(
		"name", "Ada",
		"phones", "555-0100",
		"address__street", "1 Main St",
		"address__kind", "home",
		"people__age", "36",
		"people__age", "",
	)
	if err := openapi.ValidateSubmission(schema, ok); err != nil {
		t.Fatalf("expected valid submission: %v", err)
	}

	tooMany := testsupport.Submission(
		"name", "Ada",
		"phones", "1",
		"phones", "2",
		"phones", "3",
	)
	err := openapi.ValidateSubmission(schema, tooMany)
	if !errors.Is(err, openapi.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}

	payload := openapi.ErrorPayload(err)
	if _, ok := payload["/phones"]; !ok {
		t.Fatalf("expected /phones in payload, got %v", payload)
	}
	mapping := render.MapErrorPayload(contactForm(t).Keys(), payload)
	if len(mapping.Fields["phones"]) == 0 {
		t.Fatalf("expected phones errors after mapping, got %#v", mapping)
	}
}

func TestValidateSubmission_MissingRequired(t *testing.T) {
	err := openapi.ValidateSubmission(openapi.Schema(contactForm(t)), testsupport.Submission())
	if err == nil {
		t.Fatalf("expected missing name to fail")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected error to mention name, got %v", err)
	}
}

var cmpSorted = cmpopts.SortSlices(func(a, b string) bool { return a < b })
