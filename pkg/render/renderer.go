// Package render defines the contract between bound forms and the packages
// that turn them into markup, plus the helpers renderers share.
package render

import (
	"context"

	"github.com/goliatone/go-formfields/pkg/forms"
)

// Renderer converts a bound form into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *forms.Bound, options RenderOptions) ([]byte, error)
}
