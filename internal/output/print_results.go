package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/ranking"
)

// PrintRanking writes the top candidates of every slot. The entry under the browse
// cursor is marked with '>'.
func PrintRanking(w io.Writer, b *ranking.Browser, top int) {
	res := b.Result()
	if res.Empty() {
		fmt.Fprintln(w, "No eligible items")
		return
	}
	for _, slot := range res.Slots() {
		entries := res.Entries(slot)
		cursor := b.Cursor(slot)
		fmt.Fprintf(w, "%s (%d):\n", slot, len(entries))
		for i, e := range entries {
			if top > 0 && i >= top && i != cursor {
				continue
			}
			mark := " "
			if i == cursor {
				mark = ">"
			}
			fmt.Fprintf(w, "%s %2d. %s (lvl %d) score=%.3f%s\n", mark, i+1, e.Item.Name, e.Item.RequiredLevel, e.Score, statsSuffix(e.Item))
		}
	}
}

// PrintCurrent writes the entry under the cursor of one slot with its score terms.
func PrintCurrent(w io.Writer, b *ranking.Browser, slot string) {
	e, ok := b.Current(slot)
	if !ok {
		fmt.Fprintf(w, "%s: no candidates\n", slot)
		return
	}
	fmt.Fprintf(w, "%s [%d/%d]: %s (lvl %d) score=%.3f%s\n", slot, b.Cursor(slot)+1, b.Result().Len(slot), e.Item.Name, e.Item.RequiredLevel, e.Score, statsSuffix(e.Item))
	for _, t := range e.Breakdown.Terms {
		if t.Value == 0 {
			continue
		}
		fmt.Fprintf(w, "    %-14s %12.3f\n", t.Name, t.Value)
	}
	if line := attributeList(e.Item.Attributes); line != "" {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func statsSuffix(it domain.Item) string {
	var parts []string
	if v := it.Stat(domain.StatArmor); v != 0 {
		parts = append(parts, fmt.Sprintf("arm=%g", v))
	}
	if v := it.Stat(domain.StatShield); v != 0 {
		parts = append(parts, fmt.Sprintf("def=%g", v))
	}
	if v := it.Stat(domain.StatAttack); v != 0 {
		parts = append(parts, fmt.Sprintf("atk=%g", v))
	}
	if res := resistanceText(it.Resistances); res != "" {
		parts = append(parts, res)
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func resistanceText(res map[string]float64) string {
	keys := make([]string, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	// keep deterministic output
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %+g%%", k, res[k]))
	}
	return strings.Join(parts, ", ")
}

func attributeList(attrs []domain.Attribute) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		v := a.Raw
		if v == "" {
			v = fmt.Sprintf("%g", a.Value)
		}
		parts = append(parts, a.Name+" "+v)
	}
	return strings.Join(parts, ", ")
}
