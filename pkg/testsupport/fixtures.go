package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-formfields/pkg/submission"
)

// MustParseSubmission parses an urlencoded body into ordered submission
// values, failing the test on malformed input.
func MustParseSubmission(t *testing.T, raw string) submission.Values {
	t.Helper()

	values, err := submission.Parse(raw)
	if err != nil {
		t.Fatalf("parse submission %q: %v", raw, err)
	}
	return values
}

// Submission builds ordered values from key/value pairs. Keys may repeat to
// express rows.
func Submission(pairs ...string) submission.Values {
	values := submission.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		values.Add(pairs[i], pairs[i+1])
	}
	return values
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
