package ranking

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Previous Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "prev"
}

// ParseDirection accepts "next"/"n" and "prev"/"previous"/"p".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "n":
		return Next, nil
	case "prev", "previous", "p":
		return Previous, nil
	}
	return Previous, fmt.Errorf("unsupported direction %q (supported: next, prev)", s)
}

// Browser holds the per-slot cursor over a Result. It is UI state and is not safe
// for concurrent use.
type Browser struct {
	result  Result
	cursors map[string]int
}

func NewBrowser() *Browser {
	return &Browser{cursors: map[string]int{}}
}

// Apply replaces the browsed result. Cursors of slots that are still present are
// kept and clamped to the new length, new slots start at 0 and cursors of vanished
// slots are dropped.
func (b *Browser) Apply(r Result) {
	next := make(map[string]int, len(r.order))
	for _, slot := range r.order {
		next[slot] = clamp(b.cursors[slot], r.Len(slot))
	}
	b.result = r
	b.cursors = next
}

// Advance moves a slot's cursor one step. It stops at both ends and ignores slots
// that are not in the current result. It returns the resulting cursor.
func (b *Browser) Advance(slot string, dir Direction) int {
	c, ok := b.cursors[slot]
	if !ok {
		return 0
	}
	if dir == Next {
		c++
	} else {
		c--
	}
	c = clamp(c, b.result.Len(slot))
	b.cursors[slot] = c
	return c
}

// Cursor returns the cursor of a slot, 0 when the slot is unknown.
func (b *Browser) Cursor(slot string) int {
	return b.cursors[slot]
}

// Current returns the entry under a slot's cursor.
func (b *Browser) Current(slot string) (Entry, bool) {
	entries := b.result.Entries(slot)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[b.cursors[slot]], true
}

func (b *Browser) Result() Result {
	return b.result
}

func clamp(c, n int) int {
	if n <= 0 || c < 0 {
		return 0
	}
	if c > n-1 {
		return n - 1
	}
	return c
}
