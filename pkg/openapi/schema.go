package openapi

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
)

// ContentType is the media type forms are submitted with.
const ContentType = "application/x-www-form-urlencoded"

const integerPattern = `^\s*([-+]?\d+)?\s*$`

// RequestBody wraps Schema in a urlencoded request body.
func RequestBody(form *forms.Form) *openapi3.RequestBody {
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithSchema(Schema(form), []string{ContentType})
	if form.Name() != "" {
		body.WithDescription(form.Name())
	}
	return body
}

// Schema returns the object schema of the flat keys form reads.
func Schema(form *forms.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, entry := range form.Entries() {
		key := form.HTMLName(entry.Name)
		describe(schema, entry.Field, key, 0)
		if isRequiredLeaf(entry.Field) {
			required = append(required, key)
		}
	}
	if len(required) > 0 {
		schema.WithRequired(required)
	}
	return schema
}

// describe adds the properties field reads under key. maxItems is non-zero
// inside a dynamic input.
func describe(schema *openapi3.Schema, field fields.Field, key string, maxItems int) {
	switch typed := field.(type) {
	case *dynamicinputs.Field:
		describe(schema, typed.Inner(), key, typed.MaxCount())
		return
	case fields.Container:
		for _, child := range typed.Children() {
			describe(schema, child.Field, fields.Join(key, child.Name), maxItems)
		}
		return
	}

	value := leafSchema(field)
	if maxItems > 0 {
		value = openapi3.NewArraySchema().WithItems(value).WithMaxItems(int64(maxItems))
	}
	schema.WithProperty(key, value)
}

func leafSchema(field fields.Field) *openapi3.Schema {
	value := openapi3.NewStringSchema()
	spec := field.Spec()
	if spec.Label != "" {
		value.Title = spec.Label
	}
	value.Description = spec.HelpText

	switch typed := field.(type) {
	case *fields.CharField:
		if n := typed.MaxLength(); n > 0 {
			value.WithMaxLength(int64(n))
		}
		if format := typed.Format(); format != "" {
			value.WithFormat(format)
		}
	case *fields.IntegerField:
		value.WithPattern(integerPattern)
		min, max := typed.Bounds()
		if min != nil {
			value.Description = appendNote(value.Description, "minimum "+strconv.Itoa(*min))
		}
		if max != nil {
			value.Description = appendNote(value.Description, "maximum "+strconv.Itoa(*max))
		}
	case *fields.ChoiceField:
		enum := make([]any, 0, len(typed.Choices())+1)
		if !spec.Required {
			enum = append(enum, "")
		}
		for _, choice := range typed.Choices() {
			enum = append(enum, choice.Value)
		}
		value.WithEnum(enum...)
	}
	return value
}

func isRequiredLeaf(field fields.Field) bool {
	switch field.(type) {
	case *dynamicinputs.Field, fields.Container, *fields.BooleanField:
		return false
	}
	return field.Spec().Required
}

func appendNote(text, note string) string {
	if text == "" {
		return note
	}
	return text + " (" + note + ")"
}
