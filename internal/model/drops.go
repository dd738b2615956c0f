package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DropTableType is a recognized drop table heading on a monster page.
type DropTableType string

const (
	DropAlways          DropTableType = "Always"
	DropHundredPercent  DropTableType = "100%"
	DropNormal          DropTableType = "Normal"
	DropRare            DropTableType = "Rare"
	DropTertiary        DropTableType = "Tertiary"
	DropUntradeable     DropTableType = "Untradeable"
	DropWeaponsArmour   DropTableType = "Weapons and armour"
	DropWeapons         DropTableType = "Weapons"
	DropArmour          DropTableType = "Armour"
	DropRunes           DropTableType = "Runes"
	DropRunesAmmunition DropTableType = "Runes and ammunition"
	DropAmmunition      DropTableType = "Ammunition"
	DropHerbs           DropTableType = "Herbs"
	DropSeeds           DropTableType = "Seeds"
	DropCoins           DropTableType = "Coins"
	DropGems            DropTableType = "Gems"
	DropMaterials       DropTableType = "Materials"
	DropResources       DropTableType = "Resources"
	DropTalismans       DropTableType = "Talismans"
	DropPreRoll         DropTableType = "Pre-roll"
	DropOther           DropTableType = "Other"
)

// DropTableTypes lists every recognized type in declaration order.
var DropTableTypes = []DropTableType{
	DropAlways,
	DropHundredPercent,
	DropNormal,
	DropRare,
	DropTertiary,
	DropUntradeable,
	DropWeaponsArmour,
	DropWeapons,
	DropArmour,
	DropRunes,
	DropRunesAmmunition,
	DropAmmunition,
	DropHerbs,
	DropSeeds,
	DropCoins,
	DropGems,
	DropMaterials,
	DropResources,
	DropTalismans,
	DropPreRoll,
	DropOther,
}

// ParseDropTableType matches a heading against the known types. The match is
// exact apart from case and surrounding whitespace.
func ParseDropTableType(heading string) (DropTableType, bool) {
	heading = strings.TrimSpace(heading)
	for _, t := range DropTableTypes {
		if strings.EqualFold(heading, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Ratio is a drop rate that may be unknown.
type Ratio struct {
	Value float64
	Known bool
}

// KnownRatio wraps a parsed drop rate.
func KnownRatio(v float64) Ratio {
	return Ratio{Value: v, Known: true}
}

// Sentinel returns the rate, or -1 when unknown.
func (r Ratio) Sentinel() float64 {
	if !r.Known {
		return -1
	}
	return r.Value
}

// MarshalJSON encodes the sentinel form. A zero denominator leaves a
// non-finite rate, which JSON cannot carry, so it is written as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	v := r.Sentinel()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON reverses MarshalJSON, which is lossy: null reads back as NaN
// even when it was written for an infinite rate, and a known rate of exactly
// -1 reads back as unknown.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*r = KnownRatio(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Known: v != -1}
	if !r.Known {
		r.Value = 0
	}
	return nil
}

// Amount is a whole-number value (a price) that may be unknown.
type Amount struct {
	Value int
	Known bool
}

// KnownAmount wraps a parsed amount.
func KnownAmount(v int) Amount {
	return Amount{Value: v, Known: true}
}

// Sentinel returns the amount, or -1 when unknown.
func (a Amount) Sentinel() int {
	if !a.Known {
		return -1
	}
	return a.Value
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Sentinel())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount{Value: v, Known: v != -1}
	if !a.Known {
		a.Value = 0
	}
	return nil
}

// DropEntry is one row of a drop table.
type DropEntry struct {
	ImageURL   string `json:"image_url"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	RarityText string `json:"rarity_text"`
	Rarity     Ratio  `json:"rarity"`
	Price      Amount `json:"price"`
}

// DropTables maps drop table types to their entries, keeping the order the
// tables were first added in. The zero value is ready to use.
type DropTables struct {
	m *orderedmap.OrderedMap[DropTableType, []DropEntry]
}

// NewDropTables returns an empty mapping.
func NewDropTables() *DropTables {
	return &DropTables{m: orderedmap.New[DropTableType, []DropEntry]()}
}

// Set stores the entries for t. Replacing an existing type keeps its position.
func (d *DropTables) Set(t DropTableType, entries []DropEntry) {
	if d.m == nil {
		d.m = orderedmap.New[DropTableType, []DropEntry]()
	}
	if entries == nil {
		entries = []DropEntry{}
	}
	d.m.Set(t, entries)
}

// Get returns the entries for t.
func (d *DropTables) Get(t DropTableType) ([]DropEntry, bool) {
	if d.m == nil {
		return nil, false
	}
	return d.m.Get(t)
}

// Len returns the number of tables.
func (d *DropTables) Len() int {
	if d.m == nil {
		return 0
	}
	return d.m.Len()
}

// Types returns the table types in insertion order.
func (d *DropTables) Types() []DropTableType {
	types := make([]DropTableType, 0, d.Len())
	for t := range d.All() {
		types = append(types, t)
	}
	return types
}

// All iterates tables in insertion order.
func (d *DropTables) All() iter.Seq2[DropTableType, []DropEntry] {
	return func(yield func(DropTableType, []DropEntry) bool) {
		if d.m == nil {
			return
		}
		for p := d.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// EntryCount returns the total number of entries across all tables.
func (d *DropTables) EntryCount() int {
	n := 0
	for _, entries := range d.All() {
		n += len(entries)
	}
	return n
}

// MarshalJSON encodes the tables as an object whose keys follow insertion order.
func (d *DropTables) MarshalJSON() ([]byte, error) {
	if d.m == nil {
		return []byte("{}"), nil
	}
	return d.m.MarshalJSON()
}

// UnmarshalJSON decodes an object produced by MarshalJSON, keeping key order.
// Unknown table types are rejected.
func (d *DropTables) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, []DropEntry]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}

	*d = *NewDropTables()
	for p := raw.Oldest(); p != nil; p = p.Next() {
		t, ok := ParseDropTableType(p.Key)
		if !ok {
			return fmt.Errorf("unknown drop table type %q", p.Key)
		}
		d.Set(t, p.Value)
	}
	return nil
}
