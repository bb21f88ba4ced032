// Package scoring turns a normalized item into a single desirability number.
// Higher is better. Every scorer is a pure value; nothing here keeps state between
// calls.
package scoring

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Scorer rates one item for a character against an incoming damage profile.
type Scorer interface {
	Score(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) float64
	Breakdown(it domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile) Breakdown
}

// Term is one named contribution to a score.
type Term struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Breakdown lists the terms of a score in the order they were summed.
type Breakdown struct {
	Terms []Term  `json:"terms"`
	Total float64 `json:"total"`
}

func (b *Breakdown) add(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	b.Terms = append(b.Terms, Term{Name: name, Value: v})
	b.Total += v
}

// Term returns the value of a named term, 0 when absent.
func (b Breakdown) Term(name string) float64 {
	for _, t := range b.Terms {
		if t.Name == name {
			return t.Value
		}
	}
	return 0
}

// For builds the scorer for a strategy.
func For(s domain.Strategy, w domain.Weights) Scorer {
	if s == domain.StrategyBalanced {
		return Balanced{Weights: w}
	}
	return Defense{Weights: w}
}

// Attribute names read by the scorers.
const (
	attrCritChance = "critical_hit_chance"
	attrCritDamage = "critical_extra_damage"
	attrLifeLeech  = "life_leech"
	attrManaLeech  = "mana_leech"
)

var reAugmentCrit = regexp.MustCompile(`(?i)\+(\d+(?:\.\d+)?)%\s*critical\s*extra\s*damage`)

// critical returns crit chance and crit damage. Augments that grant critical extra
// damage count towards the damage part.
func critical(it domain.Item) (chance, damage float64) {
	chance = it.Attr(attrCritChance)
	damage = it.Attr(attrCritDamage)

	spells := make([]string, 0, len(it.Augments))
	for k := range it.Augments {
		spells = append(spells, k)
	}
	slices.Sort(spells)
	for _, s := range spells {
		if m := reAugmentCrit.FindStringSubmatch(it.Augments[s]); m != nil {
			damage += parseFloat(m[1])
		}
	}
	return chance, damage
}

// profileSum accumulates f(type) weighted by each type's share of the profile.
// Types are visited in sorted order.
func profileSum(profile domain.DamageProfile, f func(damageType string) float64) float64 {
	total := profile.Total()
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for _, t := range profile.Types() {
		share := profile.Share(t, total)
		if share == 0 {
			continue
		}
		sum += f(t) * share
	}
	return sum
}

// vocationSkill is the skill bonus that matters for the character outside weapon
// slots. Knights take their best melee skill; unknown vocations take the best of all.
func vocationSkill(it domain.Item, vocation string) float64 {
	v, ok := domain.ParseVocation(vocation)
	if !ok {
		return maxAttr(it, append([]string{domain.SkillMagicLevel, domain.SkillDistance}, domain.MeleeSkills...))
	}
	switch v {
	case domain.Sorcerer, domain.Druid:
		return it.Attr(domain.SkillMagicLevel)
	case domain.Paladin:
		return it.Attr(domain.SkillDistance)
	case domain.Knight:
		return maxAttr(it, domain.MeleeSkills)
	case domain.Monk:
		return it.Attr(domain.SkillFist)
	}
	return 0
}

func maxAttr(it domain.Item, names []string) float64 {
	best := 0.0
	for i, n := range names {
		if v := it.Attr(n); i == 0 || v > best {
			best = v
		}
	}
	return best
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
