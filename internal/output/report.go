package output

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/ranking"
	"github.com/tibiasim/gear_roster/internal/scoring"
)

// Report is the exported view of one ranking pass.
type Report struct {
	Name        string               `json:"name"`
	GeneratedAt time.Time            `json:"generated_at"`
	Vocation    string               `json:"vocation"`
	Level       int                  `json:"level"`
	Weapon      string               `json:"weapon,omitempty"`
	Strategy    string               `json:"strategy"`
	Profile     domain.DamageProfile `json:"damage_profile"`
	Best        []Row                `json:"best"`
	Slots       []SlotReport         `json:"slots"`
}

type SlotReport struct {
	Slot string `json:"slot"`
	Rows []Row  `json:"rows"`
}

type Row struct {
	Rank          int                `json:"rank"`
	Slot          string             `json:"slot"`
	Name          string             `json:"name"`
	RequiredLevel int                `json:"required_level"`
	Vocations     []string           `json:"vocations,omitempty"`
	Score         float64            `json:"score"`
	Armor         float64            `json:"armor"`
	Shield        float64            `json:"shield"`
	Attack        float64            `json:"attack"`
	HitsTaken     float64            `json:"hits_taken"`
	Resistances   map[string]float64 `json:"resistances,omitempty"`
	Attributes    []domain.Attribute `json:"attributes,omitempty"`
	Augments      map[string]string  `json:"augments,omitempty"`
	Image         string             `json:"image,omitempty"`
	Breakdown     scoring.Breakdown  `json:"breakdown"`
}

// BuildReport flattens a result. top limits the rows per slot; 0 keeps all.
func BuildReport(name string, ctx domain.PlayerContext, strategy domain.Strategy, profile domain.DamageProfile, res ranking.Result, top int) Report {
	rep := Report{
		Name:        name,
		GeneratedAt: time.Now(),
		Vocation:    ctx.Vocation,
		Level:       ctx.Level,
		Weapon:      ctx.WeaponPreference,
		Strategy:    strategy.String(),
		Profile:     profile,
	}
	for _, slot := range res.Slots() {
		entries := res.Entries(slot)
		if top > 0 && len(entries) > top {
			entries = entries[:top]
		}
		sr := SlotReport{Slot: slot, Rows: make([]Row, 0, len(entries))}
		for i, e := range entries {
			sr.Rows = append(sr.Rows, rowOf(i+1, e))
		}
		rep.Slots = append(rep.Slots, sr)
		rep.Best = append(rep.Best, sr.Rows[0])
	}
	return rep
}

func rowOf(rank int, e ranking.Entry) Row {
	it := e.Item
	armor := it.Stat(domain.StatArmor)
	return Row{
		Rank:          rank,
		Slot:          it.EquipmentType,
		Name:          it.Name,
		RequiredLevel: it.RequiredLevel,
		Vocations:     it.RequiredVocation,
		Score:         e.Score,
		Armor:         armor,
		Shield:        it.Stat(domain.StatShield),
		Attack:        it.Stat(domain.StatAttack),
		HitsTaken:     scoring.HitsTaken(armor),
		Resistances:   it.Resistances,
		Attributes:    it.Attributes,
		Augments:      it.Augments,
		Image:         it.Image,
		Breakdown:     e.Breakdown,
	}
}

// ReportName derives a file stem such as "knight_650_defense".
func ReportName(ctx domain.PlayerContext, strategy domain.Strategy) string {
	parts := []string{strings.ToLower(ctx.Vocation), strconv.Itoa(ctx.Level)}
	if ctx.WeaponPreference != "" {
		parts = append(parts, strings.ToLower(ctx.WeaponPreference))
	}
	parts = append(parts, strategy.String())
	return SafeFileName(strings.Join(parts, "_"))
}

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "result"
	}
	name = reUnsafe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		return "result"
	}
	return name
}

func WriteReportJSON(outDir string, report Report) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, SafeFileName(report.Name)+".json")

	b, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	b = append(b, '\n')
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}
