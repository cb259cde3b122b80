// Package forms binds an ordered set of fields to a flat submission, cleans
// every field, and exposes cleaned data, errors and per-field render state.
package forms
