package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/scoring"
)

// armorScorer scores by armor only.
type armorScorer struct{}

func (armorScorer) Score(it domain.Item, ctx domain.PlayerContext, p domain.DamageProfile) float64 {
	return it.Stat(domain.StatArmor)
}

func (s armorScorer) Breakdown(it domain.Item, ctx domain.PlayerContext, p domain.DamageProfile) scoring.Breakdown {
	v := s.Score(it, ctx, p)
	return scoring.Breakdown{Terms: []scoring.Term{{Name: "armor", Value: v}}, Total: v}
}

func item(name, slot string, armor float64) domain.Item {
	return domain.Item{Name: name, EquipmentType: slot, BaseStats: map[string]float64{domain.StatArmor: armor}}
}

func entryNames(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item.Name)
	}
	return out
}

func TestRankGroupsAndSorts(t *testing.T) {
	items := []domain.Item{
		item("leather helmet", "helmets", 1),
		item("plate armor", "armors", 10),
		item("steel helmet", "helmets", 6),
		item("chain armor", "armors", 6),
		item("iron helmet", "helmets", 6),
	}

	res := Rank(items, armorScorer{}, domain.PlayerContext{}, nil)

	assert.Equal(t, []string{"helmets", "armors"}, res.Slots())
	assert.Equal(t, []string{"steel helmet", "iron helmet", "leather helmet"}, entryNames(res.Entries("helmets")))
	assert.Equal(t, []string{"plate armor", "chain armor"}, entryNames(res.Entries("armors")))
	assert.Equal(t, []string{"steel helmet", "plate armor"}, entryNames(res.BestSet()))
	assert.False(t, res.Has("boots"))
}

func TestRankEmpty(t *testing.T) {
	res := Rank(nil, armorScorer{}, domain.PlayerContext{}, nil)
	assert.True(t, res.Empty())
	assert.Empty(t, res.BestSet())
	assert.Nil(t, res.Entries("helmets"))
}

func TestRankIsDeterministic(t *testing.T) {
	items := []domain.Item{
		{Name: "a", EquipmentType: "armors", Resistances: map[string]float64{"fire": 3, "ice": 1}, BaseStats: map[string]float64{domain.StatArmor: 9}},
		{Name: "b", EquipmentType: "armors", Resistances: map[string]float64{"energy": 7}, BaseStats: map[string]float64{domain.StatArmor: 8}},
		{Name: "c", EquipmentType: "armors", Resistances: map[string]float64{"death": 5, "earth": 2}, BaseStats: map[string]float64{domain.StatArmor: 10}},
	}
	profile := domain.DamageProfile{"physical": 400000, "fire": 200000, "energy": 150000, "ice": 100000, "earth": 150000, "death": 100000, "holy": 100000}
	scorer := scoring.For(domain.StrategyDefense, domain.DefaultWeights())

	first := Rank(items, scorer, domain.PlayerContext{Vocation: "Knight"}, profile)
	for i := 0; i < 20; i++ {
		again := Rank(items, scorer, domain.PlayerContext{Vocation: "Knight"}, profile)
		require.Equal(t, first.Slots(), again.Slots())
		for _, slot := range first.Slots() {
			a, b := first.Entries(slot), again.Entries(slot)
			require.Equal(t, entryNames(a), entryNames(b))
			for j := range a {
				require.Equal(t, a[j].Score, b[j].Score)
			}
		}
	}
}

func TestBrowserClamps(t *testing.T) {
	items := []domain.Item{item("a", "rings", 3), item("b", "rings", 2), item("c", "rings", 1)}
	b := NewBrowser()
	b.Apply(Rank(items, armorScorer{}, domain.PlayerContext{}, nil))

	assert.Equal(t, 0, b.Advance("rings", Previous))
	assert.Equal(t, 1, b.Advance("rings", Next))
	assert.Equal(t, 2, b.Advance("rings", Next))
	assert.Equal(t, 2, b.Advance("rings", Next))

	cur, ok := b.Current("rings")
	require.True(t, ok)
	assert.Equal(t, "c", cur.Item.Name)

	assert.Equal(t, 0, b.Advance("amulets", Next))
	_, ok = b.Current("amulets")
	assert.False(t, ok)
}

func TestBrowserApplyKeepsCursors(t *testing.T) {
	b := NewBrowser()
	b.Apply(Rank([]domain.Item{
		item("a", "rings", 3), item("b", "rings", 2), item("c", "rings", 1),
		item("x", "boots", 1), item("y", "boots", 0),
	}, armorScorer{}, domain.PlayerContext{}, nil))
	b.Advance("rings", Next)
	b.Advance("rings", Next)
	b.Advance("boots", Next)

	// rings shrinks to two entries, boots vanishes, legs is new.
	b.Apply(Rank([]domain.Item{
		item("a", "rings", 3), item("b", "rings", 2),
		item("l", "legs", 4),
	}, armorScorer{}, domain.PlayerContext{}, nil))

	assert.Equal(t, 1, b.Cursor("rings"))
	assert.Equal(t, 0, b.Cursor("legs"))
	_, ok := b.Current("boots")
	assert.False(t, ok)

	// boots comes back and starts over.
	b.Apply(Rank([]domain.Item{item("x", "boots", 1), item("y", "boots", 0)}, armorScorer{}, domain.PlayerContext{}, nil))
	assert.Equal(t, 0, b.Cursor("boots"))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Next")
	require.NoError(t, err)
	assert.Equal(t, Next, d)
	d, err = ParseDirection("previous")
	require.NoError(t, err)
	assert.Equal(t, Previous, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
