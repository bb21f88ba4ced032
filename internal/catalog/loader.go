package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tibiasim/gear_roster/internal/domain"
)

// Loader reads catalog files and normalizes every record once.
type Loader struct {
	Log zerolog.Logger
}

func NewLoader(log zerolog.Logger) Loader {
	return Loader{Log: log.With().Str("module", "catalog").Logger()}
}

// Load reads all files concurrently and returns the items in path order, each file
// keeping its record order. Records without a name are dropped.
func (l Loader) Load(ctx context.Context, paths ...string) ([]domain.Item, error) {
	perFile := make([][]domain.Item, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items, err := l.loadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.Item
	for _, items := range perFile {
		out = append(out, items...)
	}
	l.Log.Info().Int("files", len(paths)).Int("items", len(out)).Msg("catalog loaded")
	return out, nil
}

func (l Loader) loadFile(path string) ([]domain.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	records, err := decodeRecords(b)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	slot := SlotFromPath(path)
	items := make([]domain.Item, 0, len(records))
	skipped := 0
	for _, rec := range records {
		it := Normalize(rec, slot)
		if it.Name == "" {
			skipped++
			continue
		}
		items = append(items, it)
	}

	ev := l.Log.Debug()
	if skipped > 0 {
		ev = l.Log.Warn()
	}
	ev.Str("path", path).Int("items", len(items)).Int("skipped", skipped).Msg("catalog file normalized")
	return items, nil
}

// decodeRecords accepts a top-level array or an object with an "items" array.
func decodeRecords(b []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := sonic.Unmarshal(b, &records); err == nil {
		return records, nil
	}
	var wrapped struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := sonic.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Items == nil {
		return nil, fmt.Errorf("expected a JSON array or an object with an \"items\" array")
	}
	return wrapped.Items, nil
}

// SlotFromPath derives the slot of a per-slot catalog file: "data/fist_fighting.json"
// gives "fist fighting".
func SlotFromPath(path string) string {
	base := filepath.Base(path)
	return domain.NormalizeSlot(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ExpandPaths resolves glob patterns relative to root. Patterns that match nothing
// are returned as-is so the read error names the missing file.
func ExpandPaths(root string, patterns []string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("catalog pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}
