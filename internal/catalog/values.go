package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	reLeadingNumber = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?`)
	reThousands     = regexp.MustCompile(`^[+-]?\d{1,3}(?:,\d{3})+(?:\.\d+)?`)
)

// Number parses catalog text such as "15", "+12%", "-5 %", "1,250" or "200+".
// Anything it cannot read resolves to 0, never NaN.
func Number(s string) float64 {
	v, _ := parseNumber(s)
	return v
}

// parseNumber is Number that also reports whether s held a number at all.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if m := reThousands.FindString(s); m != "" {
		s = strings.ReplaceAll(m, ",", "")
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.Replace(s, "+ ", "+", 1)
	s = strings.Replace(s, "- ", "-", 1)
	m := reLeadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numberOf reads a JSON value that may be a number, a numeric string or junk.
func numberOf(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number:
		return finite(r.Num)
	case gjson.String:
		return Number(r.Str)
	case gjson.True:
		return 1
	}
	return 0
}

// present reports whether a field carries something other than null or blank text.
func present(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return strings.TrimSpace(r.Str) != ""
	}
	return true
}

// firstNumber returns the first field among the given paths that reads as a number.
// Present but unreadable aliases fall through to the next one.
func firstNumber(rec gjson.Result, paths ...string) float64 {
	for _, p := range paths {
		r := rec.Get(p)
		switch r.Type {
		case gjson.Number:
			if !math.IsNaN(r.Num) && !math.IsInf(r.Num, 0) {
				return r.Num
			}
		case gjson.String:
			if v, ok := parseNumber(r.Str); ok {
				return v
			}
		}
	}
	return 0
}

// first returns the first present field among the given paths.
func first(rec gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := rec.Get(p); present(r) {
			return r
		}
	}
	return gjson.Result{}
}

// rawText renders a JSON scalar as display text.
func rawText(r gjson.Result) string {
	if r.Type == gjson.String {
		return strings.TrimSpace(r.Str)
	}
	if r.Type == gjson.Number {
		return strings.TrimSpace(r.Raw)
	}
	return ""
}

// Percent reads a percentage such as "+8%" or "-5 %" as its numeric part.
func Percent(s string) float64 {
	return Number(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}
