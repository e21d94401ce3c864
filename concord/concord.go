// Package concord maps raw, inconsistent place labels onto the canonical
// region taxonomy. Resolution is deterministic and total: every input label
// yields exactly one region, degrading to the "Unknown" sentinel when no
// concordance entry exists. Unmapped labels are collected for diagnostics —
// a mapping gap never fails a run.
package concord

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gridshift-org/gridshift/engine"
)

// Map is a concordance table: normalized raw label → canonical region.
type Map map[string]string

// Resolver resolves raw place labels against an immutable Map, recording
// each distinct unmapped label once. Load the map once per run; the resolver
// must not be shared across concurrent runs.
type Resolver struct {
	entries Map
	misses  map[string]bool
}

// NewResolver creates a Resolver over a concordance map. The map is
// normalized on construction so lookups are case- and suffix-insensitive.
func NewResolver(m Map) *Resolver {
	entries := make(Map, len(m))
	for raw, region := range m {
		entries[normalize(raw)] = region
	}
	return &Resolver{entries: entries, misses: make(map[string]bool)}
}

// Resolve maps a raw place label to its canonical region. Never errors and
// never returns empty: unmapped or blank labels resolve to "Unknown".
func (r *Resolver) Resolve(raw string) string {
	key := normalize(raw)
	if key == "" {
		return engine.SentinelUnknown
	}
	if region, ok := r.entries[key]; ok {
		return region
	}
	r.misses[strings.TrimSpace(raw)] = true
	return engine.SentinelUnknown
}

// Unmapped returns the sorted set of distinct labels that failed to resolve
// since construction.
func (r *Resolver) Unmapped() []string {
	out := make([]string, 0, len(r.misses))
	for label := range r.misses {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// normalize canonicalizes a raw label for lookup: trims, lowercases, and
// strips the "District"/"City" suffixes territorial-authority extracts
// sometimes carry.
func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range []string{" district", " city", " territory"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}

// ----------------------------------------------------------------------------
// TOML loading
// ----------------------------------------------------------------------------

type fileFormat struct {
	Regions map[string]string `toml:"regions"`
}

// Load parses a concordance map from TOML. The file carries a single
// [regions] table of raw label → canonical region entries.
func Load(r io.Reader) (Map, error) {
	var f fileFormat
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parse concordance: %w", err)
	}
	if len(f.Regions) == 0 {
		return nil, fmt.Errorf("parse concordance: no [regions] entries")
	}
	return Map(f.Regions), nil
}

// LoadFile reads a concordance map from a TOML file on disk.
func LoadFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open concordance: %w", err)
	}
	defer f.Close()
	return Load(f)
}
