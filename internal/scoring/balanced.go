package scoring

import (
	"math"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Balanced blends offense with utility. Weapon slots are ranked by their primary
// skill first; every other slot gets the generic score.
type Balanced struct {
	Weights domain.Weights
}

func (s Balanced) Score(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) float64 {
	return s.Breakdown(it, ctx, profile).Total
}

func (s Balanced) Breakdown(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) Breakdown {
	if domain.IsWeaponSlot(it.EquipmentType) {
		return s.weapon(it, profile)
	}
	return s.generic(it, ctx, profile)
}

// weapon scores primary*PrimarySkill plus a secondary part that is capped below
// half a primary point, so one skill point always outweighs any secondary gap.
func (s Balanced) weapon(it domain.Item, profile domain.DamageProfile) Breakdown {
	w := s.Weights
	skill := domain.PrimarySkill(it.EquipmentType)

	var b Breakdown
	b.add("primary", (it.Attr(skill)+it.Stat(skill))*w.PrimarySkill)

	var sec Breakdown
	sec.add("elemental", elementalMagicLevel(it, profile)*w.ElementalMagicLevel)
	chance, damage := critical(it)
	sec.add("crit", chance*w.CritChance+damage*w.CritDamage)
	sec.add("leech", it.Attr(attrLifeLeech)*w.LifeLeech+it.Attr(attrManaLeech)*w.ManaLeech)
	sec.add("resistance", weightedResistance(it, profile)*w.Resistance)
	sec.add("buffs", float64(len(it.Buffs))*w.Buff)
	sec.add("augments", float64(len(it.Augments))*w.Augment)

	for _, t := range sec.Terms {
		b.add(t.Name, t.Value)
	}
	limit := w.PrimarySkill / 2 * 0.999
	if capped := math.Max(-limit, math.Min(limit, sec.Total)); capped != sec.Total {
		b.add("secondary_cap", capped-sec.Total)
	}
	return b
}

func (s Balanced) generic(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) Breakdown {
	w := s.Weights

	var b Breakdown
	b.add("armor", (it.Stat(domain.StatArmor)+it.Stat(domain.StatShield))*w.Armor)
	b.add("attack", it.Stat(domain.StatAttack)*w.Attack)
	b.add("resistance", weightedResistance(it, profile)*w.GenericResistance)
	b.add("skill", vocationSkill(it, ctx.Vocation)*w.Skill)
	chance, damage := critical(it)
	b.add("crit", chance*w.CritChance+damage*w.CritDamage)
	b.add("leech", it.Attr(attrLifeLeech)*w.LifeLeech+it.Attr(attrManaLeech)*w.ManaLeech)
	b.add("buffs", float64(len(it.Buffs))*w.Buff)
	b.add("augments", float64(len(it.Augments))*w.Augment)
	return b
}

// elementalMagicLevel sums "<element>_magic_level" bonuses weighted by how much of
// that element the profile carries.
func elementalMagicLevel(it domain.Item, profile domain.DamageProfile) float64 {
	return profileSum(profile, func(t string) float64 {
		return it.Attr(strings.ToLower(t) + "_" + domain.SkillMagicLevel)
	})
}

func weightedResistance(it domain.Item, profile domain.DamageProfile) float64 {
	return profileSum(profile, it.Resistance)
}
