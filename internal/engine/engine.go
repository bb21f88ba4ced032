// Package engine is the call surface of the ranking pipeline: filter, score and
// rank a normalized catalog for one player context.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/eligibility"
	"github.com/tibiasim/gear_roster/internal/ranking"
	"github.com/tibiasim/gear_roster/internal/scoring"
)

// Engine is immutable after New and safe for concurrent ComputeRanking calls as long
// as callers do not modify the catalog they pass in.
type Engine struct {
	weights domain.Weights
	log     zerolog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for debug traces of each pass.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l.With().Str("module", "engine").Logger()
	}
}

func New(weights domain.Weights, opts ...Option) *Engine {
	e := &Engine{weights: weights, log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Weights() domain.Weights {
	return e.weights
}

// ComputeRanking runs one full pass. It never fails: items that cannot be used are
// dropped and slots left without candidates are absent from the result.
func (e *Engine) ComputeRanking(catalog []domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile, strategy domain.Strategy) ranking.Result {
	eligible := eligibility.Filter(catalog, ctx)
	res := ranking.Rank(eligible, scoring.For(strategy, e.weights), ctx, profile)

	e.log.Debug().
		Str("strategy", strategy.String()).
		Str("vocation", ctx.Vocation).
		Int("level", ctx.Level).
		Str("weapon", ctx.WeaponPreference).
		Int("catalog", len(catalog)).
		Int("eligible", len(eligible)).
		Int("slots", len(res.Slots())).
		Msg("ranking computed")
	return res
}

// Session pairs an engine with the cursor state of the last calculation. It is not
// safe for concurrent use.
type Session struct {
	engine  *Engine
	browser *ranking.Browser
}

func NewSession(e *Engine) *Session {
	return &Session{engine: e, browser: ranking.NewBrowser()}
}

// Calculate replaces the current result. Cursors follow ranking.Browser.Apply.
func (s *Session) Calculate(catalog []domain.Item, ctx domain.PlayerContext, profile domain.DamageProfile, strategy domain.Strategy) ranking.Result {
	res := s.engine.ComputeRanking(catalog, ctx, profile, strategy)
	s.browser.Apply(res)
	return res
}

func (s *Session) AdvanceCursor(slot string, dir ranking.Direction) int {
	return s.browser.Advance(slot, dir)
}

func (s *Session) Current(slot string) (ranking.Entry, bool) {
	return s.browser.Current(slot)
}

func (s *Session) Browser() *ranking.Browser {
	return s.browser
}

func (s *Session) Result() ranking.Result {
	return s.browser.Result()
}
