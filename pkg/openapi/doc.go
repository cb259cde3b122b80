// Package openapi describes a form's wire contract as an OpenAPI request body
// and checks submissions against it. Keys read by a dynamic input are arrays
// of strings; every other key is a single string.
package openapi
