// Package widgets renders the HTML controls used by leaf fields and picks a
// widget for a column declaration when none is named explicitly.
package widgets
