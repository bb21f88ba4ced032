package domain

import (
	"fmt"
	"strings"
)

// Weights tunes both scoring strategies. Every field is a named configuration
// input so formula variants can be swapped without touching the algorithms.
type Weights struct {
	// Balanced strategy.
	PrimarySkill        float64 `yaml:"primary_skill" json:"primary_skill"`
	Skill               float64 `yaml:"skill" json:"skill"`
	ElementalMagicLevel float64 `yaml:"elemental_magic_level" json:"elemental_magic_level"`
	CritChance          float64 `yaml:"crit_chance" json:"crit_chance"`
	CritDamage          float64 `yaml:"crit_damage" json:"crit_damage"`
	LifeLeech           float64 `yaml:"life_leech" json:"life_leech"`
	ManaLeech           float64 `yaml:"mana_leech" json:"mana_leech"`
	Buff                float64 `yaml:"buff" json:"buff"`
	Augment             float64 `yaml:"augment" json:"augment"`
	Resistance          float64 `yaml:"resistance" json:"resistance"`
	GenericResistance   float64 `yaml:"generic_resistance" json:"generic_resistance"`
	Armor               float64 `yaml:"armor" json:"armor"`
	Attack              float64 `yaml:"attack" json:"attack"`

	Defense DefenseWeights `yaml:"defense" json:"defense"`
}

type DefenseWeights struct {
	Armor              float64      `yaml:"armor" json:"armor"`
	MagicLevelTiebreak float64      `yaml:"magic_level_tiebreak" json:"magic_level_tiebreak"`
	Model              DefenseModel `yaml:"model" json:"model"`
	ArmorOrder         ArmorOrder   `yaml:"armor_order" json:"armor_order"`
}

// DefenseModel selects how the defense strategy turns resistances and armor into a score.
type DefenseModel string

const (
	// DefenseWeighted accumulates share-weighted mitigated damage plus a small armor term.
	DefenseWeighted DefenseModel = "weighted"
	// DefenseSimulated replays one hit per damage type and scores the negated damage taken.
	DefenseSimulated DefenseModel = "simulated"
)

// ArmorOrder decides whether armor is subtracted before or after resistances
// in the simulated defense model.
type ArmorOrder string

const (
	ResistanceFirst ArmorOrder = "resistance_first"
	ArmorFirst      ArmorOrder = "armor_first"
)

func DefaultWeights() Weights {
	return Weights{
		PrimarySkill:        10000,
		Skill:               100,
		ElementalMagicLevel: 100,
		CritChance:          20,
		CritDamage:          15,
		LifeLeech:           25,
		ManaLeech:           20,
		Buff:                50,
		Augment:             50,
		Resistance:          2,
		GenericResistance:   20,
		Armor:               20,
		Attack:              20,
		Defense: DefenseWeights{
			Armor:              1,
			MagicLevelTiebreak: 0.001,
			Model:              DefenseWeighted,
			ArmorOrder:         ResistanceFirst,
		},
	}
}

// Validate rejects values the scoring code cannot give a meaning to.
func (w Weights) Validate() error {
	if w.PrimarySkill <= 0 {
		return fmt.Errorf("weights.primary_skill must be > 0, got %v", w.PrimarySkill)
	}
	switch DefenseModel(strings.ToLower(string(w.Defense.Model))) {
	case "", DefenseWeighted, DefenseSimulated:
	default:
		return fmt.Errorf("weights.defense.model: unsupported %q (supported: weighted, simulated)", w.Defense.Model)
	}
	switch ArmorOrder(strings.ToLower(string(w.Defense.ArmorOrder))) {
	case "", ResistanceFirst, ArmorFirst:
	default:
		return fmt.Errorf("weights.defense.armor_order: unsupported %q (supported: resistance_first, armor_first)", w.Defense.ArmorOrder)
	}
	return nil
}
