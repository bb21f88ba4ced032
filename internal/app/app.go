package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tibiasim/gear_roster/internal/catalog"
	"github.com/tibiasim/gear_roster/internal/config"
	"github.com/tibiasim/gear_roster/internal/damage"
	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/engine"
	"github.com/tibiasim/gear_roster/internal/output"
)

// printTop is how many candidates per slot are printed after a calculation.
const printTop = 5

type Options struct {
	Args []string
	// Root skips FindRoot when set.
	Root   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// RunWithOptions ranks the configured catalog and returns the desired process exit code.
func RunWithOptions(opts Options) int {
	opts = opts.withDefaults()

	appRoot := opts.Root
	if appRoot == "" {
		root, err := FindRoot()
		if err != nil {
			fmt.Fprintln(opts.Stderr, err)
			return CodeIO
		}
		appRoot = root
	}

	if err := run(appRoot, opts); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(opts.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(opts.Stderr, err)
		return CodeIO
	}
	return CodeOK
}

func run(appRoot string, opts Options) error {
	totalStart := time.Now()

	cfg, err := config.Load(appRoot, opts.Args)
	if err != nil {
		var ce config.ConfigError
		if errors.As(err, &ce) {
			return ExitWithError(CodeConfig, fmt.Errorf("config: %w", err))
		}
		return ExitWithError(CodeIO, err)
	}

	logger := NewLogger(opts.Stderr, cfg.LogLevel)
	logger.Debug().Str("config", cfg.Path).Str("root", appRoot).Msg("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := catalog.ExpandPaths(appRoot, cfg.Catalog)
	if err != nil {
		return ExitWithError(CodeConfig, err)
	}
	items, err := catalog.NewLoader(logger).Load(ctx, paths...)
	if err != nil {
		return ExitWithError(CodeIO, fmt.Errorf("load catalog: %w", err))
	}

	profile, err := loadProfile(appRoot, cfg, logger)
	if err != nil {
		return ExitWithError(CodeIO, err)
	}

	session := engine.NewSession(engine.New(cfg.Weights, engine.WithLogger(logger)))
	pctx := cfg.Context()
	res := session.Calculate(items, pctx, profile, cfg.Strategy)
	output.PrintRanking(opts.Stdout, session.Browser(), printTop)

	name := cfg.Output.Name
	if name == "" {
		name = output.ReportName(pctx, cfg.Strategy)
	}
	report := output.BuildReport(name, pctx, cfg.Strategy, profile, res, 0)
	outDir := config.ResolvePath(appRoot, cfg.Output.Dir)
	if cfg.Output.XLSX {
		path, err := output.ExportRankingXLSX(outDir, report)
		if err != nil {
			return ExitWithError(CodeIO, fmt.Errorf("export xlsx: %w", err))
		}
		fmt.Fprintln(opts.Stdout, "Exported:", path)
	}
	if cfg.Output.JSON {
		path, err := output.WriteReportJSON(outDir, report)
		if err != nil {
			return ExitWithError(CodeIO, fmt.Errorf("write json report: %w", err))
		}
		fmt.Fprintln(opts.Stdout, "Report:", path)
	}

	logger.Info().
		Int("items", len(items)).
		Int("slots", len(res.Slots())).
		Dur("elapsed", time.Since(totalStart)).
		Msg("ranking done")

	if cfg.Browse {
		b := &browseState{
			session:  session,
			catalog:  items,
			ctx:      pctx,
			profile:  profile,
			strategy: cfg.Strategy,
			out:      opts.Stdout,
		}
		return b.loop(opts.Stdin)
	}
	return nil
}

// loadProfile reads the damage log when one is configured. Empty text falls back to
// the configured default profile.
func loadProfile(appRoot string, cfg config.Config, logger zerolog.Logger) (domain.DamageProfile, error) {
	text := ""
	if cfg.DamageLog != "" {
		path := config.ResolvePath(appRoot, cfg.DamageLog)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read damage log %s: %w", path, err)
		}
		text = string(b)
	}
	profile := damage.ProfileOrDefault(text, cfg.DefaultProfile())
	if strings.TrimSpace(text) != "" && len(profile) == 0 {
		logger.Warn().Str("path", cfg.DamageLog).Msg("damage log has no \"Damage Types\" entries; resistances will not count")
	}
	logger.Debug().Int("types", len(profile)).Float64("total", profile.Total()).Msg("damage profile ready")
	return profile, nil
}

// NewLogger builds the console logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}
