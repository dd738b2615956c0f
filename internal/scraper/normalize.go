package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var footnoteRe = regexp.MustCompile(`\[.*\]`)

// StripFootnotes removes bracketed footnote markers such as "[1]". The match
// is greedy, so everything from the first "[" to the last "]" goes.
func StripFootnotes(text string) string {
	return footnoteRe.ReplaceAllString(text, "")
}

// nodeText returns the text of sel with whitespace runs collapsed and trimmed.
func nodeText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
