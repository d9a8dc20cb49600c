// Package extractor locates transmission entries inside the terminal page.
//
// The page has no semantic markup for its entries. The only stable landmark
// is an anchor cell whose three text nodes read "DD/MM HH:MM", a separator,
// and "Scroll to the right to read!". Every cell after the anchor, in the same
// table, is a candidate entry decoded positionally as (title, separator, body).
//
// # Usage
//
//	ex := extractor.New()
//	records, err := ex.Extract(page)
//	if model.IsKind(err, model.KindParse) {
//	    // page layout changed or feed is empty
//	}
//
// Records are returned in document order, which on the terminal page is
// newest-first.
package extractor
