// Package ranking orders scored items per slot and tracks the browsing cursor.
package ranking

import (
	"sort"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/scoring"
)

// Entry is one ranked candidate. The score lives here, never on the item.
type Entry struct {
	Item      domain.Item       `json:"item"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// Result maps each slot to its candidates, best first.
type Result struct {
	order  []string
	bySlot map[string][]Entry
}

// Rank scores items and sorts each slot descending. Ties keep input order. Items
// are expected to be filtered already.
func Rank(items []domain.Item, scorer scoring.Scorer, ctx domain.PlayerContext, profile domain.DamageProfile) Result {
	res := Result{bySlot: map[string][]Entry{}}
	for _, it := range items {
		b := scorer.Breakdown(it, ctx, profile)
		if _, ok := res.bySlot[it.EquipmentType]; !ok {
			res.order = append(res.order, it.EquipmentType)
		}
		res.bySlot[it.EquipmentType] = append(res.bySlot[it.EquipmentType], Entry{Item: it, Score: b.Total, Breakdown: b})
	}
	for _, slot := range res.order {
		entries := res.bySlot[slot]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	}
	return res
}

// Slots returns the slot names in the order they first appeared in the input.
func (r Result) Slots() []string {
	return append([]string(nil), r.order...)
}

// Entries returns the ranked candidates of a slot, nil when the slot is absent.
func (r Result) Entries(slot string) []Entry {
	return r.bySlot[slot]
}

func (r Result) Len(slot string) int {
	return len(r.bySlot[slot])
}

func (r Result) Has(slot string) bool {
	_, ok := r.bySlot[slot]
	return ok
}

func (r Result) Empty() bool {
	return len(r.order) == 0
}

// BestSet returns the top candidate of every slot, in slot order.
func (r Result) BestSet() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, slot := range r.order {
		out = append(out, r.bySlot[slot][0])
	}
	return out
}
