// Package eligibility drops the catalog items a character cannot use.
package eligibility

import (
	"slices"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// allowedSlots lists the weapon-bearing slots each vocation may equip. Slots outside
// domain.WeaponSlots are never restricted.
var allowedSlots = map[domain.Vocation][]string{
	domain.Sorcerer: {domain.SlotWands, domain.SlotSpellbooks},
	domain.Druid:    {domain.SlotRods, domain.SlotSpellbooks},
	domain.Knight:   {domain.SlotSwords, domain.SlotAxes, domain.SlotClubs, domain.SlotFistFighting, domain.SlotSpellbooks},
	domain.Paladin:  {domain.SlotBows, domain.SlotSpellbooks},
	domain.Monk:     {domain.SlotFistFighting, domain.SlotSpellbooks},
}

// AllowedSlots returns a copy of the weapon slot allow-list for a vocation.
func AllowedSlots(v domain.Vocation) []string {
	return slices.Clone(allowedSlots[v])
}

// Filter keeps the items usable by ctx, in input order. items is not modified.
func Filter(items []domain.Item, ctx domain.PlayerContext) []domain.Item {
	rules := newRules(ctx)
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if rules.allows(it) {
			out = append(out, it)
		}
	}
	return out
}

// Allowed reports whether a single item passes every rule.
func Allowed(it domain.Item, ctx domain.PlayerContext) bool {
	return newRules(ctx).allows(it)
}

type rules struct {
	level    int
	vocation domain.Vocation
	known    bool
	slots    []string
}

func newRules(ctx domain.PlayerContext) rules {
	r := rules{level: ctx.Level}
	r.vocation, r.known = domain.ParseVocation(ctx.Vocation)
	if !r.known {
		return r
	}
	r.slots = allowedSlots[r.vocation]

	pref, ok := domain.ParseWeaponPreference(ctx.WeaponPreference)
	if !ok || !slices.Contains(r.slots, pref) || meleeCount(r.slots) < 2 {
		return r
	}
	narrowed := make([]string, 0, len(r.slots))
	for _, s := range r.slots {
		if s == pref || !slices.Contains(domain.MeleeSlots, s) {
			narrowed = append(narrowed, s)
		}
	}
	r.slots = narrowed
	return r
}

func meleeCount(slots []string) int {
	n := 0
	for _, s := range slots {
		if slices.Contains(domain.MeleeSlots, s) {
			n++
		}
	}
	return n
}

func (r rules) allows(it domain.Item) bool {
	if it.RequiredLevel > r.level {
		return false
	}
	if !r.known {
		return true
	}
	if !r.vocationAllows(it.RequiredVocation) {
		return false
	}
	if domain.IsWeaponSlot(it.EquipmentType) && !slices.Contains(r.slots, it.EquipmentType) {
		return false
	}
	return true
}

// vocationAllows treats a list without any recognizable vocation as unrestricted.
func (r rules) vocationAllows(required []string) bool {
	restricted := false
	for _, name := range required {
		v, ok := domain.ParseVocation(name)
		if !ok {
			continue
		}
		if v == r.vocation {
			return true
		}
		restricted = true
	}
	return !restricted
}
