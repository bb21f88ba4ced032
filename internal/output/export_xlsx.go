package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const bestSheet = "Best"

var rowHeaders = []string{"Rank", "Slot", "Name", "Level", "Score", "Armor", "Hits Taken", "Shield", "Attack", "Resistances", "Attributes"}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

// SheetName turns a slot into a valid sheet title: "fist fighting" -> "Fist Fighting".
func SheetName(slot string) string {
	name := cases.Title(language.English).String(strings.TrimSpace(slot))
	name = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")").Replace(name)
	if name == "" || strings.EqualFold(name, bestSheet) {
		name = "Slot " + name
	}
	return truncateRunes(name, maxSheetName)
}

const maxSheetName = 31

func truncateRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return strings.TrimRight(string(r[:n]), " ")
	}
	return s
}

// uniqueSheetName returns name, or name with a " 2", " 3"... suffix when a sheet of
// that name already exists. The suffix is kept within the sheet name limit. Sheet
// names compare case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// ExportRankingXLSX writes a "Best" sheet with the top item per slot followed by one
// sheet per slot. It returns the written path.
func ExportRankingXLSX(outDir string, report Report) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bestSheet); err != nil {
		return "", err
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}
	scoreStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return "", err
	}

	// Title row on the summary sheet, merged across all columns.
	lastCol := colName(len(rowHeaders))
	title := fmt.Sprintf("%s %d %s", report.Vocation, report.Level, report.Strategy)
	if report.Weapon != "" {
		title += " (" + report.Weapon + ")"
	}
	f.SetCellValue(bestSheet, "A1", title)
	_ = f.MergeCell(bestSheet, "A1", lastCol+"1")
	if err := writeRows(f, bestSheet, 2, report.Best, headerStyleID, scoreStyleID); err != nil {
		return "", err
	}

	used := map[string]bool{strings.ToLower(bestSheet): true}
	for _, sr := range report.Slots {
		sheet := uniqueSheetName(SheetName(sr.Slot), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return "", err
		}
		if err := writeRows(f, sheet, 1, sr.Rows, headerStyleID, scoreStyleID); err != nil {
			return "", err
		}
	}

	if idx, err := f.GetSheetIndex(bestSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102")
	filename := filepath.Join(outDir, fmt.Sprintf("%s_gear_roster_%s.xlsx", timestamp, SafeFileName(report.Name)))
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}

func writeRows(f *excelize.File, sheet string, headerRow int, rows []Row, headerStyleID, scoreStyleID int) error {
	for i, h := range rowHeaders {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName(i+1), headerRow), h)
	}
	lastCol := colName(len(rowHeaders))
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyleID); err != nil {
		return err
	}

	row := headerRow
	for _, r := range rows {
		row++
		values := []any{
			r.Rank,
			r.Slot,
			r.Name,
			r.RequiredLevel,
			r.Score,
			r.Armor,
			r.HitsTaken,
			r.Shield,
			r.Attack,
			resistanceText(r.Resistances),
			attributeList(r.Attributes),
		}
		for i, v := range values {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName(i+1), row), v)
		}
	}
	if row > headerRow {
		if err := f.SetCellStyle(sheet, fmt.Sprintf("E%d", headerRow+1), fmt.Sprintf("E%d", row), scoreStyleID); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("G%d", headerRow+1), fmt.Sprintf("G%d", row), scoreStyleID); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "C", "C", 32)
	_ = f.SetColWidth(sheet, "J", "K", 48)
	return nil
}
