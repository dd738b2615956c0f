package scraper

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// ParseNumber reads a number written with "," grouping and "." decimals from
// the start of text. Trailing text after the number is ignored, so "5 (noted)"
// reads as 5 and "1-3" as 1. It fails when text does not start with a number.
func ParseNumber(text string) (float64, bool) {
	var b strings.Builder
	digits := 0
	i := 0

	if strings.HasPrefix(text, "-") {
		b.WriteByte('-')
		i++
	}

	for ; i < len(text); i++ {
		c := text[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
			digits++
			continue
		}
		if c == ',' && digits > 0 {
			continue
		}
		break
	}

	if i < len(text) && text[i] == '.' {
		frac := i + 1
		for frac < len(text) && text[frac] >= '0' && text[frac] <= '9' {
			frac++
		}
		if frac > i+1 {
			b.WriteString(text[i:frac])
			digits += frac - i - 1
		}
	}

	if digits == 0 {
		return 0, false
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseInt truncates the number at the start of text toward zero, returning
// def when there is none.
func parseInt(text string, def int) int {
	n, ok := ParseNumber(text)
	if !ok {
		return def
	}
	i, ok := toInt(n)
	if !ok {
		return def
	}
	return i
}

// toInt truncates n toward zero. Values outside the int range are rejected.
func toInt(n float64) (int, bool) {
	if n < float64(math.MinInt) || n >= float64(math.MaxInt) {
		return 0, false
	}
	return int(n), true
}

// ParseRarity reads a rarity cell. Only the first ";"-separated variant is
// considered. The raw text is returned unchanged for display.
func ParseRarity(text string) (string, model.Ratio) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	first, _, _ := strings.Cut(compact, ";")
	if first == "Always" {
		return text, model.KnownRatio(1.0)
	}

	parts := strings.Split(first, "/")
	if len(parts) != 2 {
		return text, model.Ratio{}
	}

	numer, ok := ParseNumber(parts[0])
	if !ok {
		return text, model.Ratio{}
	}
	denom, ok := ParseNumber(parts[1])
	if !ok {
		return text, model.Ratio{}
	}

	// A zero denominator is passed through as Inf/NaN.
	return text, model.KnownRatio(numer / denom)
}

// ImageURL returns the first image source in cell prefixed with origin, or ""
// when the cell has no image with a source.
func ImageURL(cell *goquery.Selection, origin string) string {
	src, _ := cell.Find("img").First().Attr("src")
	if src == "" {
		return ""
	}
	return origin + src
}
