package scraper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultOrigin is the OSRS wiki's scheme and host.
const DefaultOrigin = "https://oldschool.runescape.wiki"

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeName turns a free-text monster name into a wiki page title:
// "  giant RAT " becomes "Giant_rat".
func SanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = whitespaceRe.ReplaceAllString(name, "_")

	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func pagePath(name string) string {
	return "/w/" + SanitizeName(name)
}

// WikiURL returns the page URL for name on the wiki at origin.
func WikiURL(origin, name string) string {
	return origin + pagePath(name)
}

// DropsURL returns a link to the drops section of name's page. It is meant
// for display; the page itself is what gets fetched.
func DropsURL(origin, name string) string {
	return WikiURL(origin, name) + "#Drops"
}
