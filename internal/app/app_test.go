package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const armorsJSON = `[
  {"name": "Plate Armor", "arm": "10", "level": 0},
  {"name": "Magic Plate Armor", "stats": {"Arm": 17}, "requiredLevel": 60},
  {"name": "Falcon Plate", "armor": 18, "requiredLevel": 650, "resistances": {"physical": "+12%"}}
]`

const wandsJSON = `[
  {"name": "Wand of Vortex", "vocation": "sorcerers", "attributes": "magic level +1"}
]`

const damageLog = `Session data
Damage Types
Physical 40,000 (80.0%)
Fire 10,000 (20.0%)
Damage Sources
Dragon 50,000 (100%)
`

func setupRoot(t *testing.T, cfg string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "armors.json"), []byte(armorsJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "wands.json"), []byte(wandsJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "damage.txt"), []byte(damageLog), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gear_config.yaml"), []byte(cfg), 0o644))
	return root
}

func runApp(root string, stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := RunWithOptions(Options{
		Args:   args,
		Root:   root,
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	})
	return code, out.String(), errOut.String()
}

func TestRunRanksAndWritesReports(t *testing.T) {
	root := setupRoot(t, `
catalog: ["data/*.json"]
vocation: Knight
level: 650
damage_log: damage.txt
log_level: warn
`)

	code, out, stderr := runApp(root, "")
	require.Equal(t, CodeOK, code, stderr)

	assert.Contains(t, out, "armors (3):")
	assert.Contains(t, out, ">  1. Falcon Plate")
	assert.NotContains(t, out, "Wand of Vortex")
	assert.Contains(t, out, "Exported:")

	jsonPath := filepath.Join(root, "output", "gear_roster", "knight_650_defense.json")
	_, err := os.Stat(jsonPath)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(root, "output", "gear_roster", "*_gear_roster_knight_650_defense.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	root := setupRoot(t, "catalog: [\"data/*.json\"]\noutput:\n  xlsx: false\n  json: false\n")

	code, out, stderr := runApp(root, "", "-vocation", "Sorcerer", "-level", "10", "-strategy", "balanced")
	require.Equal(t, CodeOK, code, stderr)
	assert.Contains(t, out, "wands (1):")
	assert.Contains(t, out, "Plate Armor")
	assert.NotContains(t, out, "Magic Plate Armor")
	assert.NotContains(t, out, "Exported:")
}

func TestRunExitCodes(t *testing.T) {
	t.Run("config error", func(t *testing.T) {
		root := setupRoot(t, "strategy: offense\n")
		code, _, stderr := runApp(root, "")
		assert.Equal(t, CodeConfig, code)
		assert.Contains(t, stderr, "config:")
	})
	t.Run("bad flag", func(t *testing.T) {
		root := setupRoot(t, "")
		code, _, _ := runApp(root, "", "-level", "x")
		assert.Equal(t, CodeConfig, code)
	})
	t.Run("missing catalog", func(t *testing.T) {
		root := setupRoot(t, "catalog: [data/missing.json]\n")
		code, _, stderr := runApp(root, "")
		assert.Equal(t, CodeIO, code)
		assert.Contains(t, stderr, "load catalog")
	})
	t.Run("missing damage log", func(t *testing.T) {
		root := setupRoot(t, "damage_log: nope.txt\noutput:\n  xlsx: false\n  json: false\n")
		code, _, stderr := runApp(root, "")
		assert.Equal(t, CodeIO, code)
		assert.Contains(t, stderr, "read damage log")
	})
}

func TestBrowseLoop(t *testing.T) {
	root := setupRoot(t, "catalog: [\"data/*.json\"]\nlevel: 650\noutput:\n  xlsx: false\n  json: false\n")

	stdin := strings.Join([]string{
		"prev armors",
		"next armors",
		"next armors",
		"next armors",
		"next boots",
		"level 10",
		"calc",
		"show armors",
		"bogus",
		"quit",
		"next armors",
	}, "\n")
	code, out, stderr := runApp(root, stdin, "-browse")
	require.Equal(t, CodeOK, code, stderr)

	assert.Contains(t, out, "armors [1/3]: Falcon Plate")
	assert.Contains(t, out, "armors [2/3]: Magic Plate Armor")
	assert.Contains(t, out, "armors [3/3]: Plate Armor")
	assert.Equal(t, 2, strings.Count(out, "armors [3/3]: Plate Armor"))
	assert.Contains(t, out, `unknown slot "boots"`)
	assert.Contains(t, out, `level set to "10" (run calc to apply)`)
	assert.Contains(t, out, "armors [1/1]: Plate Armor")
	assert.Contains(t, out, `unknown command "bogus"`)
}

func TestBrowseEndsOnEOF(t *testing.T) {
	root := setupRoot(t, "output:\n  xlsx: false\n  json: false\n")
	code, _, stderr := runApp(root, "show\n", "-browse")
	assert.Equal(t, CodeOK, code, stderr)
}

func TestFindRootFrom(t *testing.T) {
	root := setupRoot(t, "")
	nested := filepath.Join(root, "cmd", "gear_roster")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := findRootFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = findRootFrom(t.TempDir())
	assert.Error(t, err)
}

func TestExitError(t *testing.T) {
	err := ExitWithError(CodeConfig, errors.New("boom"))
	ee, ok := asExitError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConfig, ee.Code)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "exit", ExitWithError(CodeIO, nil).Error())

	_, ok = asExitError(errors.New("plain"))
	assert.False(t, ok)
}
