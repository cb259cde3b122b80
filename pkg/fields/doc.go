// Package fields defines the capability every form field implements (extract
// raw values from a flat submission, clean them, render a widget) together
// with the leaf field types, the validation error tree and the helpers the
// composite fields in pkg/dynamicinputs and pkg/dictionaryfield build on.
//
// Nested structure is encoded in submission keys: a sub-field named "title"
// inside a field posted as "staff" is submitted as "staff__title" (see
// Join), and every row of a repeated field reuses the same key, one value per
// row, in row order.
package fields
