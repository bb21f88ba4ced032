package catalog

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Field aliases in resolution order. Canonical names come first so a normalized
// item normalizes to itself.
var (
	nameFields     = []string{"name", "item", "weapon"}
	slotFields     = []string{"equipmentType", "equipment_type", "type"}
	levelFields    = []string{"requiredLevel", "required_level", "level", "lvl"}
	vocationFields = []string{"requiredVocation", "required_vocation", "vocation"}
	armorFields    = []string{"baseStats.armor", "stats.Arm", "stats.arm", "stats.armor", "arm", "def", "armor"}
	attackFields   = []string{"baseStats.attack", "stats.Atk", "stats.atk", "stats.attack", "atk", "attack"}
	shieldFields   = []string{"baseStats.shield", "stats.Shield", "stats.shield", "shield"}
	resistFields   = []string{"resistances", "resistance", "resist"}
	imbueFields    = []string{"imbueSlots", "imbue_slots"}
	imageFields    = []string{"image", "local_image", "localImage"}
)

// stat keys that are resolved through the alias lists above.
var aliasedStats = map[string]struct{}{
	"arm": {}, "atk": {}, "def": {},
	domain.StatArmor: {}, domain.StatAttack: {}, domain.StatShield: {},
}

// Normalize converts one raw catalog record into the canonical item shape.
// fallbackSlot is used when the record carries no slot of its own, which is the
// case for per-slot catalog files. raw is only read.
func Normalize(raw []byte, fallbackSlot string) domain.Item {
	return normalizeRecord(gjson.ParseBytes(raw), fallbackSlot)
}

// NormalizeValue normalizes a record that was already decoded into Go values.
func NormalizeValue(rec any, fallbackSlot string) domain.Item {
	b, err := sonic.Marshal(rec)
	if err != nil {
		return normalizeRecord(gjson.Result{}, fallbackSlot)
	}
	return Normalize(b, fallbackSlot)
}

func normalizeRecord(rec gjson.Result, fallbackSlot string) domain.Item {
	it := domain.Item{
		Name:        rawText(first(rec, nameFields...)),
		BaseStats:   baseStats(rec),
		Resistances: resistances(first(rec, resistFields...)),
		Buffs:       buffs(rec.Get("buffs")),
		Augments:    augments(rec.Get("augments")),
		ImbueSlots:  imbueSlots(first(rec, imbueFields...)),
		Image:       rawText(first(rec, imageFields...)),
		Weight:      max(0, numberOf(rec.Get("weight"))),
		Range:       int(max(0, numberOf(rec.Get("range")))),
	}

	slot := rawText(first(rec, slotFields...))
	if slot == "" {
		slot = fallbackSlot
	}
	it.EquipmentType = domain.NormalizeSlot(slot)

	if lvl := firstNumber(rec, levelFields...); lvl > 0 {
		it.RequiredLevel = int(lvl)
	}
	it.RequiredVocation = vocations(first(rec, vocationFields...))

	attrs, textAugments := attributes(rec.Get("attributes"))
	it.Attributes = attrs
	for k, v := range textAugments {
		if _, ok := it.Augments[k]; !ok {
			it.Augments[k] = v
		}
	}
	return it
}

func baseStats(rec gjson.Result) map[string]float64 {
	stats := map[string]float64{}
	for _, obj := range []gjson.Result{rec.Get("baseStats"), rec.Get("stats")} {
		if !obj.IsObject() {
			continue
		}
		obj.ForEach(func(k, v gjson.Result) bool {
			key := domain.AttrKey(k.String())
			if _, aliased := aliasedStats[key]; aliased || key == "" {
				return true
			}
			if _, seen := stats[key]; !seen {
				stats[key] = numberOf(v)
			}
			return true
		})
	}
	stats[domain.StatArmor] = firstNumber(rec, armorFields...)
	stats[domain.StatAttack] = firstNumber(rec, attackFields...)
	stats[domain.StatShield] = firstNumber(rec, shieldFields...)
	return stats
}

func vocations(r gjson.Result) []string {
	var out []string
	switch {
	case r.IsArray():
		for _, v := range r.Array() {
			out = append(out, splitVocations(rawText(v))...)
		}
	case r.Type == gjson.String:
		out = splitVocations(r.Str)
	}
	return out
}

func attributes(r gjson.Result) ([]domain.Attribute, map[string]string) {
	attrs := []domain.Attribute{}
	switch {
	case r.IsArray():
		augs := map[string]string{}
		for _, el := range r.Array() {
			if el.Type == gjson.String {
				parsed, a := parseAttributeText(el.Str)
				attrs = append(attrs, parsed...)
				for k, v := range a {
					augs[k] = v
				}
				continue
			}
			if !el.IsObject() {
				continue
			}
			name := attrName(rawText(first(el, "name", "type")))
			if name == "" {
				continue
			}
			val := el.Get("value")
			raw := rawText(val)
			if rr := el.Get("raw"); rr.Exists() {
				raw = rawText(rr)
			}
			attrs = append(attrs, domain.Attribute{Name: name, Value: numberOf(val), Raw: raw})
		}
		return attrs, augs
	case r.IsObject():
		r.ForEach(func(k, v gjson.Result) bool {
			if name := attrName(k.String()); name != "" {
				attrs = append(attrs, domain.Attribute{Name: name, Value: numberOf(v), Raw: rawText(v)})
			}
			return true
		})
		return attrs, nil
	case r.Type == gjson.String:
		parsed, augs := parseAttributeText(r.Str)
		return append(attrs, parsed...), augs
	}
	return attrs, nil
}

// namedValues folds an object or an array of {name|type, value} entries into a map.
// Entries without a name or a value are skipped.
func namedValues(r gjson.Result, nameKeys []string, key func(string) string) map[string]gjson.Result {
	out := map[string]gjson.Result{}
	switch {
	case r.IsObject():
		r.ForEach(func(k, v gjson.Result) bool {
			if name := key(k.String()); name != "" && present(v) {
				out[name] = v
			}
			return true
		})
	case r.IsArray():
		for _, el := range r.Array() {
			if !el.IsObject() {
				continue
			}
			name := key(rawText(first(el, nameKeys...)))
			v := el.Get("value")
			if name == "" || !present(v) {
				continue
			}
			out[name] = v
		}
	}
	return out
}

func buffs(r gjson.Result) map[string]float64 {
	out := map[string]float64{}
	if r.Type == gjson.String {
		attrs, _ := parseAttributeText(r.Str)
		for _, a := range attrs {
			out[a.Name] = a.Value
		}
		return out
	}
	for k, v := range namedValues(r, []string{"name"}, domain.AttrKey) {
		out[k] = numberOf(v)
	}
	return out
}

func resistances(r gjson.Result) map[string]float64 {
	if r.Type == gjson.String {
		return parseResistanceText(r.Str)
	}
	out := map[string]float64{}
	lower := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	for k, v := range namedValues(r, []string{"type", "name"}, lower) {
		out[k] = numberOf(v)
	}
	return out
}

func augments(r gjson.Result) map[string]string {
	if r.Type == gjson.String {
		return parseAugmentText(r.Str)
	}
	out := map[string]string{}
	trim := func(s string) string { return strings.TrimSpace(s) }
	for k, v := range namedValues(r, []string{"name", "spell"}, trim) {
		if effect := rawText(v); effect != "" {
			out[k] = effect
		}
	}
	return out
}

func imbueSlots(r gjson.Result) domain.ImbueSlots {
	var s domain.ImbueSlots
	if r.IsObject() {
		s.Total = int(numberOf(r.Get("total")))
		s.Filled = int(numberOf(r.Get("filled")))
	} else {
		s.Total = int(numberOf(r))
	}
	s.Total = max(0, s.Total)
	s.Filled = min(max(0, s.Filled), s.Total)
	return s
}
