package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/submission"
)

// ErrInvalidSubmission wraps schema validation failures.
var ErrInvalidSubmission = errors.New("openapi: submission does not match schema")

// ValidateSubmission checks the shape of values against schema. Array
// properties receive every submitted value for their key; other properties
// receive the last one.
func ValidateSubmission(schema *openapi3.Schema, values submission.Values) error {
	if schema == nil {
		return errors.New("openapi: schema is nil")
	}
	if err := schema.VisitJSON(document(schema, values), openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	return nil
}

// ErrorPayload flattens a ValidateSubmission error into JSON pointer paths
// and messages, ready for render.MapErrorPayload.
func ErrorPayload(err error) map[string][]string {
	if err == nil {
		return nil
	}
	out := make(map[string][]string)
	collect(err, out)
	return out
}

func collect(err error, out map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			collect(item, out)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := "/" + strings.Join(schemaErr.JSONPointer(), "/")
		out[path] = append(out[path], schemaErr.Reason)
		return
	}
	out[""] = append(out[""], err.Error())
}

func document(schema *openapi3.Schema, values submission.Values) map[string]any {
	doc := make(map[string]any, values.Len())
	for _, key := range values.Keys() {
		list := values.GetList(key)
		if len(list) == 0 {
			continue
		}
		if isArray(schema, key) {
			items := make([]any, len(list))
			for i, v := range list {
				items[i] = v
			}
			doc[key] = items
			continue
		}
		doc[key] = list[len(list)-1]
	}
	return doc
}

func isArray(schema *openapi3.Schema, key string) bool {
	ref, ok := schema.Properties[key]
	if !ok || ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return false
	}
	return ref.Value.Type.Is(openapi3.TypeArray)
}
