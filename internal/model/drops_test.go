package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseDropTableType(t *testing.T) {
	for _, heading := range []string{"normal", "NORMAL", "Normal", "  Normal "} {
		got, ok := ParseDropTableType(heading)
		if !ok {
			t.Errorf("%q: expected a match", heading)
			continue
		}
		if got != DropNormal {
			t.Errorf("%q: expected Normal, got %q", heading, got)
		}
	}

	if got, ok := ParseDropTableType("weapons AND armour"); !ok || got != DropWeaponsArmour {
		t.Errorf("expected Weapons and armour, got %q (%v)", got, ok)
	}
}

func TestParseDropTableTypeNoPartialMatch(t *testing.T) {
	for _, heading := range []string{"Norm", "Normal drops", "Drops", "Location", ""} {
		if got, ok := ParseDropTableType(heading); ok {
			t.Errorf("%q: expected no match, got %q", heading, got)
		}
	}
}

func TestRatioSentinel(t *testing.T) {
	if got := (Ratio{}).Sentinel(); got != -1 {
		t.Errorf("unknown ratio: expected -1, got %v", got)
	}
	if got := KnownRatio(0.5).Sentinel(); got != 0.5 {
		t.Errorf("known ratio: expected 0.5, got %v", got)
	}
	if got := (Amount{}).Sentinel(); got != -1 {
		t.Errorf("unknown amount: expected -1, got %v", got)
	}
	if got := KnownAmount(0).Sentinel(); got != 0 {
		t.Errorf("known zero amount: expected 0, got %v", got)
	}
}

func TestRatioJSONNonFinite(t *testing.T) {
	data, err := json.Marshal(KnownRatio(math.Inf(1)))
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("expected null, got %s", data)
	}

	var r Ratio
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if !r.Known || !math.IsNaN(r.Value) {
		t.Errorf("expected known NaN, got %+v", r)
	}
}

func TestDropTablesOrder(t *testing.T) {
	d := NewDropTables()
	d.Set(DropTertiary, []DropEntry{{Name: "Clue scroll"}})
	d.Set(DropAlways, []DropEntry{{Name: "Bones"}})
	d.Set(DropTertiary, []DropEntry{{Name: "Ensouled head"}, {Name: "Clue scroll"}})

	types := d.Types()
	if len(types) != 2 || types[0] != DropTertiary || types[1] != DropAlways {
		t.Fatalf("unexpected order: %v", types)
	}

	entries, ok := d.Get(DropTertiary)
	if !ok || len(entries) != 2 {
		t.Fatalf("expected replaced tertiary entries, got %v", entries)
	}
	if d.EntryCount() != 3 {
		t.Errorf("expected 3 entries, got %d", d.EntryCount())
	}

	var seen []DropTableType
	for typ := range d.All() {
		seen = append(seen, typ)
		break
	}
	if len(seen) != 1 || seen[0] != DropTertiary {
		t.Errorf("expected early stop after Tertiary, got %v", seen)
	}
}

func TestDropTablesJSON(t *testing.T) {
	d := NewDropTables()
	d.Set(DropRare, []DropEntry{{Name: "Rune axe", Quantity: 1, RarityText: "1/128", Rarity: KnownRatio(1.0 / 128)}})
	d.Set(DropAlways, []DropEntry{{Name: "Bones", Quantity: 1, RarityText: "Always", Rarity: KnownRatio(1), Price: KnownAmount(100)}})

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}

	want := `{"Rare":[{"image_url":"","name":"Rune axe","quantity":1,"rarity_text":"1/128","rarity":0.0078125,"price":-1}],` +
		`"Always":[{"image_url":"","name":"Bones","quantity":1,"rarity_text":"Always","rarity":1,"price":100}]}`
	if string(data) != want {
		t.Errorf("unexpected JSON:\n got %s\nwant %s", data, want)
	}

	var back DropTables
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	types := back.Types()
	if len(types) != 2 || types[0] != DropRare || types[1] != DropAlways {
		t.Errorf("order lost: %v", types)
	}
	rare, _ := back.Get(DropRare)
	if rare[0].Price.Known {
		t.Error("expected unknown price after round trip")
	}
}

func TestDropTablesUnmarshalUnknownType(t *testing.T) {
	var d DropTables
	if err := json.Unmarshal([]byte(`{"Location":[]}`), &d); err == nil {
		t.Fatal("expected error for unknown table type")
	}
}

func TestDropTablesZeroValue(t *testing.T) {
	var d DropTables
	if d.Len() != 0 || len(d.Types()) != 0 {
		t.Fatalf("expected empty zero value, got %v", d.Types())
	}
	if data, err := json.Marshal(&d); err != nil || string(data) != "{}" {
		t.Errorf("expected {}, got %s (%v)", data, err)
	}

	d.Set(DropHerbs, nil)
	entries, ok := d.Get(DropHerbs)
	if !ok || entries == nil {
		t.Errorf("expected an empty herbs table, got %v (%v)", entries, ok)
	}
	if data, err := json.Marshal(&d); err != nil || string(data) != `{"Herbs":[]}` {
		t.Errorf("unexpected JSON %s (%v)", data, err)
	}
}

func TestDropTablesUnmarshalCanonicalizesKeys(t *testing.T) {
	var d DropTables
	if err := json.Unmarshal([]byte(`{"tertiary":[{"name":"Clue scroll","rarity":-1,"price":-1}],"100%":null}`), &d); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	types := d.Types()
	if len(types) != 2 || types[0] != DropTertiary || types[1] != DropHundredPercent {
		t.Errorf("unexpected types %v", types)
	}
}

func TestRatioJSONMinusOneIsUnknown(t *testing.T) {
	data, err := json.Marshal(KnownRatio(-1))
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	var r Ratio
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if r.Known {
		t.Errorf("expected a known -1 to decode as unknown, got %+v", r)
	}
}
