package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tibiasim/gear_roster/internal/damage"
	"github.com/tibiasim/gear_roster/internal/domain"
)

// FileName is the config file looked up at the app root.
const FileName = "gear_config.yaml"

type Config struct {
	Catalog              []string        `yaml:"catalog"`
	Vocation             string          `yaml:"vocation"`
	Level                int             `yaml:"level"`
	WeaponPreference     string          `yaml:"weapon_preference"`
	Strategy             domain.Strategy `yaml:"strategy"`
	DamageLog            string          `yaml:"damage_log"`
	DefaultDamageProfile Profile         `yaml:"default_damage_profile"`
	Weights              domain.Weights  `yaml:"weights"`
	Output               Output          `yaml:"output"`
	LogLevel             string          `yaml:"log_level"`

	// Flag-only settings.
	Browse bool   `yaml:"-"`
	Path   string `yaml:"-"`
}

type Output struct {
	Dir  string `yaml:"dir"`
	XLSX bool   `yaml:"xlsx"`
	JSON bool   `yaml:"json"`
	// Name is the report file stem. Empty derives one from vocation, level and strategy.
	Name string `yaml:"name"`
}

func Default() Config {
	return Config{
		Catalog:              []string{filepath.Join("data", "*.json")},
		Vocation:             "Knight",
		Level:                100,
		Strategy:             domain.StrategyDefense,
		DefaultDamageProfile: Profile(damage.DefaultProfile()),
		Weights:              domain.DefaultWeights(),
		Output: Output{
			Dir:  filepath.Join("output", "gear_roster"),
			XLSX: true,
			JSON: true,
		},
		LogLevel: "info",
	}
}

// Profile is a damage profile read from yaml. A profile given in the file replaces
// the default one instead of merging into it.
type Profile domain.DamageProfile

func (p *Profile) UnmarshalYAML(n *yaml.Node) error {
	var m map[string]float64
	if err := n.Decode(&m); err != nil {
		return err
	}
	*p = m
	return nil
}

// ConfigError marks a problem with the configuration itself, as opposed to I/O.
type ConfigError struct {
	Err error
}

func (e ConfigError) Error() string { return e.Err.Error() }
func (e ConfigError) Unwrap() error { return e.Err }

func invalid(format string, args ...any) error {
	return ConfigError{Err: fmt.Errorf(format, args...)}
}

type stringOpt struct {
	v   string
	set bool
}

func (o *stringOpt) String() string { return o.v }
func (o *stringOpt) Set(v string) error {
	o.v = v
	o.set = true
	return nil
}

type intOpt struct {
	v   int
	set bool
}

func (o *intOpt) String() string { return strconv.Itoa(o.v) }
func (o *intOpt) Set(v string) error {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid integer %q", v)
	}
	o.v = i
	o.set = true
	return nil
}

// Load reads the config file (optional) and overlays the flags given in args.
// Only flags that were actually passed override file values.
func Load(appRoot string, args []string) (Config, error) {
	fs := flag.NewFlagSet("gear_roster", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath stringOpt
	var vocationOpt stringOpt
	var levelOpt intOpt
	var weaponOpt stringOpt
	var strategyOpt stringOpt
	var damageLogOpt stringOpt
	var catalogOpt stringOpt
	var logLevelOpt stringOpt
	var outDirOpt stringOpt
	var browse bool

	fs.Var(&configPath, "config", "path to config yaml (default: "+FileName+" in the app root)")
	fs.Var(&vocationOpt, "vocation", "character vocation (sorcerer, druid, knight, paladin, monk)")
	fs.Var(&levelOpt, "level", "character level")
	fs.Var(&weaponOpt, "weapon", "melee weapon preference (sword, axe, club, fist)")
	fs.Var(&strategyOpt, "strategy", "scoring strategy (defense, balanced)")
	fs.Var(&damageLogOpt, "damage-log", "text file with a combat analyser \"Damage Types\" section")
	fs.Var(&catalogOpt, "catalog", "comma-separated catalog files or globs")
	fs.Var(&logLevelOpt, "log-level", "log level (debug, info, warn, error)")
	fs.Var(&outDirOpt, "out-dir", "report directory")
	fs.BoolVar(&browse, "browse", false, "browse candidates interactively after ranking")

	if err := fs.Parse(args); err != nil {
		return Config{}, ConfigError{Err: err}
	}

	path := strings.TrimSpace(configPath.v)
	if path == "" {
		path = FileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(appRoot, path)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Path = path
	cfg.Browse = browse

	if vocationOpt.set {
		cfg.Vocation = vocationOpt.v
	}
	if levelOpt.set {
		cfg.Level = levelOpt.v
	}
	if weaponOpt.set {
		cfg.WeaponPreference = weaponOpt.v
	}
	if strategyOpt.set {
		s, err := domain.ParseStrategy(strategyOpt.v)
		if err != nil {
			return Config{}, ConfigError{Err: fmt.Errorf("-strategy: %w", err)}
		}
		cfg.Strategy = s
	}
	if damageLogOpt.set {
		cfg.DamageLog = damageLogOpt.v
	}
	if catalogOpt.set {
		cfg.Catalog = splitList(catalogOpt.v)
	}
	if logLevelOpt.set {
		cfg.LogLevel = logLevelOpt.v
	}
	if outDirOpt.set {
		cfg.Output.Dir = outDirOpt.v
	}

	cfg.Vocation = strings.TrimSpace(cfg.Vocation)
	cfg.WeaponPreference = strings.TrimSpace(cfg.WeaponPreference)
	cfg.DamageLog = strings.TrimSpace(cfg.DamageLog)
	cfg.Output.Dir = strings.TrimSpace(cfg.Output.Dir)
	cfg.Output.Name = strings.TrimSpace(cfg.Output.Name)
	cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors. Unknown vocations and weapon preferences
// are allowed; the engine treats them as unrestricted.
func (c Config) Validate() error {
	if len(c.Catalog) == 0 {
		return invalid("catalog: at least one file or glob is required")
	}
	if c.Level < 0 {
		return invalid("level must be >= 0, got %d", c.Level)
	}
	if err := c.Weights.Validate(); err != nil {
		return ConfigError{Err: err}
	}
	for k, v := range c.DefaultDamageProfile {
		if v < 0 {
			return invalid("default_damage_profile.%s must be >= 0, got %v", k, v)
		}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return invalid("log_level: %v", err)
	}
	if (c.Output.XLSX || c.Output.JSON) && c.Output.Dir == "" {
		return invalid("output.dir is required when xlsx or json output is enabled")
	}
	return nil
}

// Context is the player context described by the config.
func (c Config) Context() domain.PlayerContext {
	return domain.PlayerContext{
		Vocation:         c.Vocation,
		Level:            c.Level,
		WeaponPreference: c.WeaponPreference,
	}
}

// DefaultProfile is the damage profile used when no damage log is given.
func (c Config) DefaultProfile() domain.DamageProfile {
	return domain.DamageProfile(c.DefaultDamageProfile)
}

// ResolvePath makes a config-relative path absolute against the app root.
func ResolvePath(appRoot, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(appRoot, p)
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config yaml %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ConfigError{Err: fmt.Errorf("parse config yaml %s: %w", path, err)}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
