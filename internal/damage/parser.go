// Package damage reads incoming-damage profiles out of combat analyser text.
package damage

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Entry is one recognized line of the "Damage Types" section.
type Entry struct {
	Type    string
	Amount  float64
	Percent float64
}

var (
	reSectionHeader = regexp.MustCompile(`(?i)^damage\s+types\s*:?$`)
	// "Fire 45,230 (30.5%)", "Fire 45,230 30.5%" or "Fire 45,230%"
	reEntry = regexp.MustCompile(`(?i)^([a-z][a-z '\-]*?)\s+(\d{1,3}(?:[,.]\d{3})+|\d+)(?:\s*%|\s*\(?\s*(\d+(?:[.,]\d+)?)\s*%\s*\)?)$`)
	reDigit = regexp.MustCompile(`\d`)
)

// ParseEntries returns the entries of every "Damage Types" section in text. A
// section ends at the next non-blank line that carries no digits, which is the next
// heading. Lines that do not parse are skipped.
func ParseEntries(text string) []Entry {
	var out []Entry
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if reSectionHeader.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if !reDigit.MatchString(line) {
			inSection = false
			continue
		}
		m := reEntry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, Entry{
			Type:    strings.TrimSpace(m[1]),
			Amount:  parseAmount(m[2]),
			Percent: parsePercent(m[3]),
		})
	}
	return out
}

// Parse builds a profile from text. Damage type names keep their spelling; a
// repeated type keeps the last amount.
func Parse(text string) domain.DamageProfile {
	profile := domain.DamageProfile{}
	for _, e := range ParseEntries(text) {
		profile[e.Type] = e.Amount
	}
	return profile
}

// ProfileOrDefault parses text, or returns a copy of def when text is blank.
func ProfileOrDefault(text string, def domain.DamageProfile) domain.DamageProfile {
	if strings.TrimSpace(text) == "" {
		out := make(domain.DamageProfile, len(def))
		for k, v := range def {
			out[k] = v
		}
		return out
	}
	return Parse(text)
}

// DefaultProfile is the profile used when no analyser text is supplied.
func DefaultProfile() domain.DamageProfile {
	return domain.DamageProfile{
		"physical": 400000,
		"fire":     200000,
		"energy":   150000,
		"ice":      100000,
		"earth":    150000,
		"death":    100000,
		"holy":     100000,
	}
}

// parseAmount reads a whole amount such as "45,230", "45.230" or "1.234.567".
// Both separators group thousands.
func parseAmount(s string) float64 {
	s = strings.NewReplacer(",", "", ".", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parsePercent reads "30.5" or "12,5". An absent share is 0.
func parsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return v
}
