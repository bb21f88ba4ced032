package scoring

import (
	"math"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Defense ranks items by how much of the incoming damage they take off.
type Defense struct {
	Weights domain.Weights
}

func (d Defense) Score(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) float64 {
	return d.Breakdown(it, ctx, profile).Total
}

func (d Defense) Breakdown(it domain.Item, _ domain.PlayerContext, profile domain.DamageProfile) Breakdown {
	var b Breakdown
	if d.model() == domain.DefenseSimulated {
		b.add("damage_taken", -d.simulatedDamage(it, profile))
	} else {
		b.add("mitigation", mitigation(it, profile))
		b.add("armor", d.Weights.Defense.Armor*(it.Stat(domain.StatArmor)+it.Stat(domain.StatShield)))
	}
	b.add("tiebreak", d.Weights.Defense.MagicLevelTiebreak*it.Attr(domain.SkillMagicLevel))
	return b
}

func (d Defense) model() domain.DefenseModel {
	return domain.DefenseModel(strings.ToLower(string(d.Weights.Defense.Model)))
}

// mitigation is the share-weighted damage removed by resistances:
// sum of incoming * res% * incoming/total over the profiled types.
func mitigation(it domain.Item, profile domain.DamageProfile) float64 {
	return profileSum(profile, func(t string) float64 {
		return profile[t] * it.Resistance(t) / 100
	})
}

// simulatedDamage replays one hit per damage type and returns the damage left after
// resistance and the average armor reduction.
func (d Defense) simulatedDamage(it domain.Item, profile domain.DamageProfile) float64 {
	armor := averageArmorReduction(it.Stat(domain.StatArmor) + it.Stat(domain.StatShield))
	armorFirst := domain.ArmorOrder(strings.ToLower(string(d.Weights.Defense.ArmorOrder))) == domain.ArmorFirst

	total := 0.0
	for _, t := range profile.Types() {
		dmg := profile[t]
		if dmg <= 0 {
			continue
		}
		res := it.Resistance(t)
		if armorFirst {
			dmg = math.Max(0, dmg-armor)
			dmg = applyResistance(dmg, res)
		} else {
			dmg = applyResistance(dmg, res)
			dmg = math.Max(0, dmg-armor)
		}
		total += dmg
	}
	return total
}

// Only positive resistances reduce a hit; weaknesses are ignored by the hit model.
func applyResistance(dmg, res float64) float64 {
	if res <= 0 {
		return dmg
	}
	return math.Max(0, math.Floor((100-res)/100*dmg))
}

// averageArmorReduction is the mean of the armor roll, which spans
// floor(a/2) to 2*floor(a/2)-1. Items without armor reduce nothing.
func averageArmorReduction(a float64) float64 {
	lo := math.Floor(a / 2)
	hi := lo*2 - 1
	return math.Max(0, math.Floor((lo+hi)/2))
}

// HitsTaken estimates how many average hits a character survives at a given armor
// value. It is a fitted curve and is only reported next to armor, never scored.
func HitsTaken(armor float64) float64 {
	return 0.0783*armor*armor - 1.8156*armor + 102.29
}
