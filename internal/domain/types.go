package domain

import (
	"slices"
	"strings"
)

// Item is one normalized catalog entry. Scoring only ever reads this shape.
type Item struct {
	Name             string             `json:"name"`
	EquipmentType    string             `json:"equipmentType"`
	RequiredLevel    int                `json:"requiredLevel"`
	RequiredVocation []string           `json:"requiredVocation,omitempty"`
	BaseStats        map[string]float64 `json:"baseStats"`
	Resistances      map[string]float64 `json:"resistances"`
	Attributes       []Attribute        `json:"attributes"`
	Buffs            map[string]float64 `json:"buffs"`
	Augments         map[string]string  `json:"augments"`
	ImbueSlots       ImbueSlots         `json:"imbueSlots"`

	// Pass-through metadata, never interpreted by the engine.
	Image  string  `json:"image,omitempty"`
	Weight float64 `json:"weight,omitempty"`
	Range  int     `json:"range,omitempty"`
}

type Attribute struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	// Raw keeps the catalog spelling ("+12%") for display.
	Raw string `json:"raw"`
}

type ImbueSlots struct {
	Total  int `json:"total"`
	Filled int `json:"filled"`
}

// Base stat keys always present in Item.BaseStats.
const (
	StatArmor  = "armor"
	StatAttack = "attack"
	StatShield = "shield"
)

// Stat returns a base stat, 0 when absent.
func (it Item) Stat(key string) float64 {
	return it.BaseStats[key]
}

// Attr looks a bonus up by normalized name, first in attributes then in buffs.
func (it Item) Attr(name string) float64 {
	name = AttrKey(name)
	for _, a := range it.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return it.Buffs[name]
}

// Resistance resolves the percentage for a damage type. The bare key wins over the
// "_resistance" suffixed key; resistances listed as attributes or buffs count last.
func (it Item) Resistance(damageType string) float64 {
	t := strings.ToLower(strings.TrimSpace(damageType))
	if t == "" {
		return 0
	}
	if v, ok := it.Resistances[t]; ok {
		return v
	}
	if v, ok := it.Resistances[t+"_resistance"]; ok {
		return v
	}
	return it.Attr(t + "_resistance")
}

// AttrKey lowercases a bonus name and joins its words with underscores.
func AttrKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// DamageProfile maps damage type to incoming amount.
type DamageProfile map[string]float64

// Total sums the non-negative amounts.
func (p DamageProfile) Total() float64 {
	total := 0.0
	for _, k := range p.Types() {
		if v := p[k]; v > 0 {
			total += v
		}
	}
	return total
}

// Types returns the profile keys in sorted order.
func (p DamageProfile) Types() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Share returns amount/total for one type, 0 for an empty profile.
func (p DamageProfile) Share(damageType string, total float64) float64 {
	v := p[damageType]
	if v <= 0 || total <= 0 {
		return 0
	}
	return v / total
}

// PlayerContext is the character a ranking pass is computed for.
type PlayerContext struct {
	Vocation         string
	Level            int
	WeaponPreference string
}
