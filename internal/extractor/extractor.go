package extractor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/antenna/internal/model"
)

// Markers recognised on the terminal page.
const (
	// DefaultAnchorHeader is the first text node of the anchor cell.
	DefaultAnchorHeader = "DD/MM HH:MM"

	// DefaultAnchorBody is the third text node of the anchor cell.
	DefaultAnchorBody = "Scroll to the right to read!"

	// DefaultSentinel is the body the feed shows while it is being rewritten.
	// Extraction stops at this entry without error.
	DefaultSentinel = "[CORRUPTED DATA] [RESTARTING...]"
)

// cellFields is the number of text nodes a cell is decoded into.
const cellFields = 3

// Extractor turns page text into update records.
// The zero value is not usable; create one with New.
type Extractor struct {
	anchorHeader string
	anchorBody   string
	sentinel     string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithAnchor overrides the anchor cell markers.
func WithAnchor(header, body string) Option {
	return func(e *Extractor) {
		e.anchorHeader = header
		e.anchorBody = body
	}
}

// WithSentinel overrides the body that truncates extraction.
func WithSentinel(sentinel string) Option {
	return func(e *Extractor) {
		e.sentinel = sentinel
	}
}

// New creates an Extractor with the terminal page markers.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		anchorHeader: DefaultAnchorHeader,
		anchorBody:   DefaultAnchorBody,
		sentinel:     DefaultSentinel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses page and returns the records of the first table that has
// any, in document order.
//
// Reaching the sentinel cell ends extraction successfully with the records
// collected so far, possibly none; later tables are not consulted.
// It returns a model.KindParse error wrapping model.ErrAnchorNotFound when
// no table contains an anchor cell, and wrapping model.ErrNoRecords when
// anchors exist but no records follow them.
func (e *Extractor) Extract(page string) ([]model.UpdateRecord, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, model.ParseError("parse html", err)
	}

	anchored := false
	for _, table := range findAll(doc, atom.Table) {
		records, found, truncated := e.scanTable(table)
		if found {
			anchored = true
		}
		if truncated || len(records) > 0 {
			return records, nil
		}
	}

	if !anchored {
		return nil, model.ParseError("extract", model.ErrAnchorNotFound)
	}
	return nil, model.ParseError("extract", model.ErrNoRecords)
}

// scanTable scans the cells of one table. It returns the records that follow
// the anchor cell, whether an anchor was found, and whether the scan stopped
// at the sentinel.
func (e *Extractor) scanTable(table *html.Node) (records []model.UpdateRecord, found, truncated bool) {
	cells := findAll(table, atom.Td)

	start := -1
	for i, cell := range cells {
		if e.isAnchor(cell) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, false, false
	}

	records = make([]model.UpdateRecord, 0, len(cells)-start)
	for _, cell := range cells[start:] {
		record, ok := decodeCell(cell)
		if !ok {
			continue
		}
		if record.Body == e.sentinel {
			return records, true, true
		}
		records = append(records, record)
	}
	return records, true, false
}

// isAnchor reports whether cell carries the anchor markers.
func (e *Extractor) isAnchor(cell *html.Node) bool {
	fields, ok := textFields(cell)
	if !ok {
		return false
	}
	return strings.TrimSpace(fields[0]) == e.anchorHeader &&
		strings.TrimSpace(fields[2]) == e.anchorBody
}

// decodeCell decodes a candidate cell as (title, separator, body).
func decodeCell(cell *html.Node) (model.UpdateRecord, bool) {
	fields, ok := textFields(cell)
	if !ok {
		return model.UpdateRecord{}, false
	}
	return model.UpdateRecord{
		Title: strings.TrimSpace(fields[0]),
		Body:  strings.TrimSpace(fields[2]),
	}, true
}

// textFields returns the first three descendant text nodes of n in document
// order. Nodes beyond the third are ignored.
func textFields(n *html.Node) ([cellFields]string, bool) {
	var fields [cellFields]string
	count := 0

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode {
			fields[count] = n.Data
			count++
			return count == cellFields
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c) {
			break
		}
	}
	return fields, count == cellFields
}

// findAll returns every element below root with the given tag, in document
// order. Nested matches are included.
func findAll(root *html.Node, tag atom.Atom) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}
