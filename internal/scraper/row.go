package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// Slot positions in a raw drop table row.
const (
	slotImage = iota
	slotName
	slotQuantity
	slotRarity
	slotPrice
	rowSlots
)

// collectRow maps the cells of one table row onto the fixed row slots. The
// image slot comes from an image source; the remaining slots take the first
// four non-empty cell texts in order. ok is false when the row has no image,
// which marks header, subtotal and malformed rows.
func collectRow(tr *goquery.Selection, origin string) (slots [rowSlots]string, ok bool) {
	next := slotName

	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		if img := ImageURL(td, origin); img != "" {
			slots[slotImage] = img
		}

		text := nodeText(td)
		if text != "" && next < rowSlots {
			slots[next] = StripFootnotes(text)
			next++
		}
	})

	return slots, slots[slotImage] != ""
}

// ParseRow converts collected slots into a drop entry. Unparseable quantities
// become 0; unparseable rarities and prices stay unknown.
func ParseRow(slots [rowSlots]string) model.DropEntry {
	entry := model.DropEntry{
		ImageURL: slots[slotImage],
		Name:     slots[slotName],
		Quantity: parseInt(slots[slotQuantity], 0),
	}

	entry.RarityText, entry.Rarity = ParseRarity(slots[slotRarity])

	if price, ok := ParseNumber(slots[slotPrice]); ok {
		if v, ok := toInt(price); ok {
			entry.Price = model.KnownAmount(v)
		}
	}

	return entry
}

// parseTable extracts every valid row of a drop table.
func parseTable(table *goquery.Selection, origin string) []model.DropEntry {
	var entries []model.DropEntry

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		slots, ok := collectRow(tr, origin)
		if !ok {
			return
		}
		entries = append(entries, ParseRow(slots))
	})

	return entries
}
