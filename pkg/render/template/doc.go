// Package template defines the renderer-agnostic template seam used by the
// composite fields and the form renderers. The default implementation lives
// in the gotemplate subpackage.
package template
