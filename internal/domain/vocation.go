package domain

import "strings"

type Vocation string

const (
	Sorcerer Vocation = "sorcerer"
	Druid    Vocation = "druid"
	Knight   Vocation = "knight"
	Paladin  Vocation = "paladin"
	Monk     Vocation = "monk"
)

var promotionPrefixes = []string{"master ", "elder ", "elite ", "royal ", "exalted "}

// ParseVocation maps a class name, its plural or its promoted form to a Vocation.
// ok is false for anything it does not recognize.
func ParseVocation(s string) (Vocation, bool) {
	v := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for _, p := range promotionPrefixes {
		v = strings.TrimPrefix(v, p)
	}
	v = strings.TrimSuffix(v, "s")
	switch Vocation(v) {
	case Sorcerer, Druid, Knight, Paladin, Monk:
		return Vocation(v), true
	}
	return "", false
}

func (v Vocation) IsCaster() bool {
	return v == Sorcerer || v == Druid
}
