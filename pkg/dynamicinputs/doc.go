// Package dynamicinputs implements a field holding a variable number of rows
// of one inner field. Every row is submitted under the same key, one value
// per row in row order, so a plain HTML form can add and remove rows by
// cloning inputs.
//
// Wrapping a dictionaryfield.Field gives a dynamic list of records:
//
//	contacts := dynamicinputs.MustNew(
//	    dictionaryfield.MustNew([]dictionaryfield.Entry{
//	        {Name: "name", Field: fields.NewChar()},
//	        {Name: "title", Field: fields.NewChar()},
//	    }),
//	    dynamicinputs.WithButton("Add contact"),
//	)
package dynamicinputs
