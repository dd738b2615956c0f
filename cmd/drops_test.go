package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/intelligrit/osrs-drops/internal/model"
)

func TestPrintDrops(t *testing.T) {
	tables := model.NewDropTables()
	tables.Set(model.DropRare, []model.DropEntry{
		{Name: "Dragon spear", Quantity: 1, RarityText: "1/128", Rarity: model.KnownRatio(1.0 / 128)},
		{Name: "Rune spear", Quantity: 1, RarityText: "1/64", Price: model.KnownAmount(12000)},
	})
	md := &model.MonsterDrops{Page: "Black_demon", DropsURL: "https://wiki.test/w/Black_demon#Drops", Tables: tables}

	var buf bytes.Buffer
	printDrops(&buf, md)
	out := buf.String()

	if !strings.HasPrefix(out, "Black demon (https://wiki.test/w/Black_demon#Drops)") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "  Rare\n") {
		t.Error("expected table heading in output")
	}
	if !strings.Contains(out, "12000 gp") {
		t.Error("expected known price in output")
	}

	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.Contains(line, "Dragon spear") && !strings.HasSuffix(line, "?") {
			t.Errorf("expected unknown price marker, got %q", line)
		}
	}
}

func TestPrintDropsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printDrops(&buf, &model.MonsterDrops{Page: "Chicken", Tables: model.NewDropTables()})
	if !strings.Contains(buf.String(), "No drop tables found.") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

type fakeFetcher struct {
	fail   map[string]bool
	after  func()
	called []string
}

func (f *fakeFetcher) WikiURL(name string) string {
	return "https://wiki.test/w/" + name
}

func (f *fakeFetcher) FetchMonster(ctx context.Context, name string) (*model.MonsterDrops, error) {
	f.called = append(f.called, name)
	if f.after != nil {
		defer f.after()
	}
	if f.fail[name] {
		return nil, errors.New("bad gateway")
	}
	return &model.MonsterDrops{Page: name, Tables: model.NewDropTables()}, nil
}

func TestRunDropsJSONKeepsResultsOnInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeFetcher{after: cancel}
	var buf bytes.Buffer
	if err := runDrops(ctx, &buf, f, nil, []string{"Goblin", "Cow"}, true); err != nil {
		t.Fatalf("runDrops: %v", err)
	}

	if len(f.called) != 1 {
		t.Errorf("expected fetching to stop after the interrupt, called %v", f.called)
	}

	var got []model.MonsterDrops
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output %q: %v", buf.String(), err)
	}
	if len(got) != 1 || got[0].Page != "Goblin" {
		t.Errorf("expected the fetched monster in output, got %+v", got)
	}
}

func TestRunDropsJSONAllFailed(t *testing.T) {
	f := &fakeFetcher{fail: map[string]bool{"Goblin": true, "Cow": true}}
	var buf bytes.Buffer
	if err := runDrops(context.Background(), &buf, f, nil, []string{"Goblin", "Cow"}, true); err != nil {
		t.Fatalf("runDrops: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}
