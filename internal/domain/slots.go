package domain

import (
	"slices"
	"strings"
)

// Slot names as they appear in catalogs after normalization.
const (
	SlotWands        = "wands"
	SlotRods         = "rods"
	SlotBows         = "bows"
	SlotSwords       = "swords"
	SlotAxes         = "axes"
	SlotClubs        = "clubs"
	SlotFistFighting = "fist fighting"
	SlotSpellbooks   = "spellbooks"
)

// WeaponSlots are the slots gated by vocation.
var WeaponSlots = []string{
	SlotWands, SlotRods, SlotBows, SlotSwords, SlotAxes, SlotClubs, SlotFistFighting, SlotSpellbooks,
}

// MeleeSlots can be narrowed by a weapon preference.
var MeleeSlots = []string{SlotSwords, SlotAxes, SlotClubs, SlotFistFighting}

// Skill attribute names.
const (
	SkillMagicLevel = "magic_level"
	SkillDistance   = "distance_fighting"
	SkillSword      = "sword_fighting"
	SkillAxe        = "axe_fighting"
	SkillClub       = "club_fighting"
	SkillFist       = "fist_fighting"
)

var MeleeSkills = []string{SkillSword, SkillAxe, SkillClub, SkillFist}

// NormalizeSlot lowercases a slot tag and turns underscores into spaces.
func NormalizeSlot(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "fists" || s == "fist" {
		return SlotFistFighting
	}
	return s
}

func IsWeaponSlot(slot string) bool {
	return slices.Contains(WeaponSlots, slot)
}

// PrimarySkill is the combat skill a weapon slot trains. Casting slots fall back to magic level.
func PrimarySkill(slot string) string {
	switch slot {
	case SlotBows:
		return SkillDistance
	case SlotSwords:
		return SkillSword
	case SlotAxes:
		return SkillAxe
	case SlotClubs:
		return SkillClub
	case SlotFistFighting:
		return SkillFist
	}
	return SkillMagicLevel
}

// ParseWeaponPreference maps "Sword", "axes", "fist" and friends to a melee slot.
func ParseWeaponPreference(s string) (string, bool) {
	v := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	switch v {
	case "sword", "swords":
		return SlotSwords, true
	case "axe", "axes":
		return SlotAxes, true
	case "club", "clubs":
		return SlotClubs, true
	case "fist", "fists", "fist fighting":
		return SlotFistFighting, true
	}
	return "", false
}
