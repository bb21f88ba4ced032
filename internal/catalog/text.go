package catalog

import (
	"regexp"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
)

var (
	reAugmentsSplit = regexp.MustCompile(`(?i)augments?\s*:`)
	// "fist fighting +1", "critical hit chance +10%", "magic level 2"
	reAttrToken = regexp.MustCompile(`(?i)([a-z][a-z' ]*?)\s*\+?(\d+(?:\.\d+)?%?)`)
	// "fire +8%", "ice -3%", "physical 5"
	reResistToken = regexp.MustCompile(`(?i)([a-z]+)\s*([+-]?\d+(?:\.\d+)?)\s*%?`)
	// "Great Fire Wave -> +8% critical extra damage"
	reAugmentEntry = regexp.MustCompile(`^(.+?)\s*->\s*(.+)$`)
)

// parseAttributeText extracts attribute tokens from wiki-style free text. Text after
// an "Augments:" marker is read as augment entries instead.
func parseAttributeText(s string) ([]domain.Attribute, map[string]string) {
	attrsPart, augmentsPart := s, ""
	if loc := reAugmentsSplit.FindStringIndex(s); loc != nil {
		attrsPart, augmentsPart = s[:loc[0]], s[loc[1]:]
	}

	var attrs []domain.Attribute
	for _, m := range reAttrToken.FindAllStringSubmatch(attrsPart, -1) {
		name := attrName(m[1])
		if name == "" {
			continue
		}
		attrs = append(attrs, domain.Attribute{Name: name, Value: Number(m[2]), Raw: "+" + m[2]})
	}
	return attrs, parseAugmentText(augmentsPart)
}

// attrName normalizes a bonus name; "protection fire" becomes "fire_resistance".
func attrName(s string) string {
	name := domain.AttrKey(s)
	if rest, ok := strings.CutPrefix(name, "protection_"); ok && rest != "" {
		return rest + "_resistance"
	}
	return name
}

func parseAugmentText(s string) map[string]string {
	out := map[string]string{}
	for _, entry := range strings.Split(s, ",") {
		m := reAugmentEntry.FindStringSubmatch(strings.TrimSpace(entry))
		if m == nil {
			continue
		}
		name, effect := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if name == "" || effect == "" {
			continue
		}
		out[name] = effect
	}
	return out
}

func parseResistanceText(s string) map[string]float64 {
	out := map[string]float64{}
	for _, m := range reResistToken.FindAllStringSubmatch(s, -1) {
		out[strings.ToLower(m[1])] = Percent(m[2])
	}
	return out
}

// splitVocations turns "knights and paladins" or "sorcerer, druid" into separate names.
func splitVocations(s string) []string {
	s = strings.ToLower(s)
	for _, sep := range []string{" and ", ",", "/", "&", ";"} {
		s = strings.ReplaceAll(s, sep, "|")
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" || part == "-" || part == "none" {
			continue
		}
		out = append(out, part)
	}
	return out
}
