package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/ranking"
	"github.com/tibiasim/gear_roster/internal/scoring"
)

func sampleResult() ranking.Result {
	stats := func(armor float64) map[string]float64 {
		return map[string]float64{domain.StatArmor: armor, domain.StatAttack: 0, domain.StatShield: 0}
	}
	items := []domain.Item{
		{Name: "Plate Armor", EquipmentType: "armors", BaseStats: stats(10)},
		{Name: "Magic Plate Armor", EquipmentType: "armors", RequiredLevel: 60, BaseStats: stats(17), Resistances: map[string]float64{"fire": 4}},
		{Name: "Fist of Fury", EquipmentType: domain.SlotFistFighting, Attributes: []domain.Attribute{{Name: "fist_fighting", Value: 2, Raw: "+2"}}},
	}
	return ranking.Rank(items, scoring.Defense{Weights: domain.DefaultWeights()}, domain.PlayerContext{}, domain.DamageProfile{"fire": 100})
}

func sampleReport() Report {
	ctx := domain.PlayerContext{Vocation: "Knight", Level: 650, WeaponPreference: "fist"}
	return BuildReport(ReportName(ctx, domain.StrategyDefense), ctx, domain.StrategyDefense, domain.DamageProfile{"fire": 100}, sampleResult(), 0)
}

func TestBuildReport(t *testing.T) {
	rep := sampleReport()

	assert.Equal(t, "knight_650_fist_defense", rep.Name)
	require.Len(t, rep.Slots, 2)
	assert.Equal(t, "armors", rep.Slots[0].Slot)
	assert.Equal(t, "Magic Plate Armor", rep.Slots[0].Rows[0].Name)
	assert.Equal(t, 2, rep.Slots[0].Rows[1].Rank)
	assert.InDelta(t, scoring.HitsTaken(17), rep.Slots[0].Rows[0].HitsTaken, 1e-9)
	require.Len(t, rep.Best, 2)
	assert.Equal(t, "Fist of Fury", rep.Best[1].Name)

	top := BuildReport("x", domain.PlayerContext{}, domain.StrategyDefense, nil, sampleResult(), 1)
	assert.Len(t, top.Slots[0].Rows, 1)
}

func TestExportRankingXLSX(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportRankingXLSX(dir, sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_gear_roster_knight_650_fist_defense.xlsx"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Best", "Armors", "Fist Fighting"}, f.GetSheetList())

	title, err := f.GetCellValue("Best", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Knight 650 defense (fist)", title)

	header, err := f.GetCellValue("Best", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	best, err := f.GetCellValue("Best", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Magic Plate Armor", best)

	second, err := f.GetCellValue("Armors", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Plate Armor", second)

	attrs, err := f.GetCellValue("Fist Fighting", "K2")
	require.NoError(t, err)
	assert.Equal(t, "fist_fighting +2", attrs)
}

func TestWriteReportJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteReportJSON(filepath.Join(dir, "nested"), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "knight_650_fist_defense.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, sonic.Unmarshal(b, &got))
	assert.Equal(t, "defense", got.Strategy)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, "Magic Plate Armor", got.Slots[0].Rows[0].Name)
	assert.Equal(t, 100.0, got.Profile["fire"])
}

func TestPrintRanking(t *testing.T) {
	b := ranking.NewBrowser()
	b.Apply(sampleResult())
	b.Advance("armors", ranking.Next)

	var buf bytes.Buffer
	PrintRanking(&buf, b, 0)
	out := buf.String()
	assert.Contains(t, out, "armors (2):")
	assert.Contains(t, out, ">  2. Plate Armor")
	assert.Contains(t, out, "   1. Magic Plate Armor (lvl 60)")
	assert.Contains(t, out, "fire +4%")

	buf.Reset()
	PrintCurrent(&buf, b, "fist fighting")
	assert.Contains(t, buf.String(), "fist fighting [1/1]: Fist of Fury")
	assert.Contains(t, buf.String(), "fist_fighting +2")

	buf.Reset()
	PrintRanking(&buf, ranking.NewBrowser(), 0)
	assert.Equal(t, "No eligible items\n", buf.String())
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "result", SafeFileName("  "))
	assert.Equal(t, "elite_knight_600", SafeFileName("elite knight 600"))
	assert.Equal(t, "a_b", SafeFileName("..a/b.."))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Fist Fighting", SheetName("fist fighting"))
	assert.Equal(t, "Slot Best", SheetName("best"))
	assert.Len(t, []rune(SheetName(strings.Repeat("x", 40))), 31)
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"best": true}
	long := strings.Repeat("x", 31)

	assert.Equal(t, "Armors", uniqueSheetName("Armors", used))
	assert.Equal(t, "Armors 2", uniqueSheetName("Armors", used))
	assert.Equal(t, "ARMORS 3", uniqueSheetName("ARMORS", used))
	assert.Equal(t, "Best 2", uniqueSheetName("Best", used))

	assert.Equal(t, long, uniqueSheetName(long, used))
	second := uniqueSheetName(long, used)
	assert.Equal(t, strings.Repeat("x", 29)+" 2", second)
	assert.Len(t, []rune(second), 31)
}

func TestExportRankingXLSXLongSlotNames(t *testing.T) {
	rep := sampleReport()
	rep.Slots = []SlotReport{
		{Slot: "enchanted sword of the eternal dragon lords", Rows: []Row{{Rank: 1, Name: "a"}}},
		{Slot: "enchanted sword of the eternal dragon lord", Rows: []Row{{Rank: 1, Name: "b"}}},
	}

	path, err := ExportRankingXLSX(t.TempDir(), rep)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 3)
	for _, name := range sheets {
		assert.LessOrEqual(t, len([]rune(name)), 31, name)
	}
	assert.NotEqual(t, sheets[1], sheets[2])

	got, err := f.GetCellValue(sheets[2], "C2")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestColName(t *testing.T) {
	assert.Equal(t, "A", colName(1))
	assert.Equal(t, "Z", colName(26))
	assert.Equal(t, "AA", colName(27))
	assert.Equal(t, "", colName(0))
}
