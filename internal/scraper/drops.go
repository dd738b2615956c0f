package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// Extractor turns a parsed monster page into drop tables. The zero value
// uses DefaultLayout, positional pairing and no image origin.
type Extractor struct {
	Origin  string
	Layout  Layout
	Pairing Pairing
}

// Extract returns the page's drop tables in heading order. Tables without a
// single valid row are left out.
func (e Extractor) Extract(doc *goquery.Document) *model.DropTables {
	layout := e.Layout
	if layout.Headings == "" {
		layout = DefaultLayout
	}

	result := model.NewDropTables()
	for _, p := range LocateTables(doc, layout, e.Pairing) {
		entries := parseTable(p.Table, e.Origin)
		if len(entries) == 0 {
			continue
		}
		result.Set(p.Type, entries)
	}
	return result
}

// ExtractDrops parses doc with the default layout, resolving image sources
// against origin.
func ExtractDrops(doc *goquery.Document, origin string) *model.DropTables {
	return Extractor{Origin: origin}.Extract(doc)
}
