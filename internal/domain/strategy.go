package domain

import (
	"fmt"
	"strings"
)

type Strategy int

const (
	StrategyDefense Strategy = iota
	StrategyBalanced
)

func (s Strategy) String() string {
	if s == StrategyBalanced {
		return "balanced"
	}
	return "defense"
}

// ParseStrategy accepts the names the calculator has used over time.
// An empty value keeps the old default of best defense.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "defense", "defence", "def", "best_def", "best def":
		return StrategyDefense, nil
	case "balanced", "balance":
		return StrategyBalanced, nil
	}
	return StrategyDefense, fmt.Errorf("unsupported strategy %q (supported: defense, balanced)", s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
