package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// Layout holds the selectors describing where drop tables live on a page.
type Layout struct {
	// Headings selects section heading labels.
	Headings string
	// FallbackHeadings is used when Headings matches nothing, which is the
	// case for pages rendered with the newer MediaWiki heading markup.
	FallbackHeadings string
	// Tables selects drop tables in document order.
	Tables string
}

// DefaultLayout matches the OSRS wiki monster page markup.
var DefaultLayout = Layout{
	Headings:         "h3 span.mw-headline",
	FallbackHeadings: "h3",
	Tables:           "h3 ~ table.item-drops, .mw-heading3 ~ table.item-drops",
}

// TablePair ties a recognized heading to the table holding its rows.
type TablePair struct {
	Type  model.DropTableType
	Table *goquery.Selection
}

// Pairing decides which table belongs to which recognized heading.
type Pairing func(types []model.DropTableType, tables []*goquery.Selection) []TablePair

// PairPositional pairs the Nth recognized heading with the Nth drop table.
// Headings without a table at their index are dropped, as are surplus tables.
// A page whose headings and tables are not one-to-one pairs silently misaligns.
func PairPositional(types []model.DropTableType, tables []*goquery.Selection) []TablePair {
	pairs := make([]TablePair, 0, len(types))
	for i, t := range types {
		if i >= len(tables) {
			break
		}
		pairs = append(pairs, TablePair{Type: t, Table: tables[i]})
	}
	return pairs
}

// HeadingTypes returns the recognized drop table types among the page's
// headings, in document order. Unrecognized headings are skipped.
func (l Layout) HeadingTypes(doc *goquery.Document) []model.DropTableType {
	headings := doc.Find(l.Headings)
	if headings.Length() == 0 && l.FallbackHeadings != "" {
		headings = doc.Find(l.FallbackHeadings)
	}

	var types []model.DropTableType
	headings.Each(func(_ int, h *goquery.Selection) {
		if t, ok := model.ParseDropTableType(nodeText(h)); ok {
			types = append(types, t)
		}
	})
	return types
}

// DropTables returns the page's drop tables in document order.
func (l Layout) DropTables(doc *goquery.Document) []*goquery.Selection {
	var tables []*goquery.Selection
	doc.Find(l.Tables).Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, t)
	})
	return tables
}

// LocateTables finds the drop tables on a page and assigns each a type.
func LocateTables(doc *goquery.Document, layout Layout, pair Pairing) []TablePair {
	if pair == nil {
		pair = PairPositional
	}
	return pair(layout.HeadingTypes(doc), layout.DropTables(doc))
}
