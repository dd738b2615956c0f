package scraper

import (
	"context"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"  ABYSSAL demon ":     "Abyssal_demon",
		"  giant RAT ":         "Giant_rat",
		"Goblin":               "Goblin",
		"king\tblack   dragon": "King_black_dragon",
		"":                     "",
		"   ":                  "",
		"élite ghoul":          "Élite_ghoul",
		"tztok-jad":            "Tztok-jad",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWikiURLs(t *testing.T) {
	if got := WikiURL(DefaultOrigin, "giant rat"); got != "https://oldschool.runescape.wiki/w/Giant_rat" {
		t.Errorf("unexpected page URL %q", got)
	}
	if got := DropsURL(DefaultOrigin, "giant rat"); got != "https://oldschool.runescape.wiki/w/Giant_rat#Drops" {
		t.Errorf("unexpected drops URL %q", got)
	}

	c := NewClient(Options{Origin: "https://wiki.test/"})
	if got := c.DropsURL("cow"); got != "https://wiki.test/w/Cow#Drops" {
		t.Errorf("expected trailing slash trimmed from origin, got %q", got)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	if rl != nil {
		t.Fatal("expected nil limiter for zero rate")
	}
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter should not block or fail: %v", err)
	}

	if err := NewRateLimiter(100).Wait(context.Background()); err != nil {
		t.Errorf("first token should be available: %v", err)
	}
}
