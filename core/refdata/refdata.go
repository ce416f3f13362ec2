// Package refdata provides the read-only reference tables a query needs:
// the county code<->name map, named age bracket definitions, and the
// region tier sets. Reference data is loaded once and never mutated by
// the engine.
package refdata

import (
	"os"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"go.uber.org/zap"

	"census-report/core/bracket"
	"census-report/core/region"
	"census-report/core/types"
	"census-report/internal/errors"
	"census-report/internal/logging"
)

// BracketDefinition is a named age grouping scheme. The explicit variant
// feeds pre-aggregation filtering; the implicit variant labels buckets.
type BracketDefinition struct {
	// Name is the internal definition name (e.g. "agegroup13")
	Name string

	// Explicit holds filter expressions ("Age=1", "Age>=5 AND Age<=13")
	Explicit []string

	// Implicit holds labelling expressions ("0-4", "20-64", "65+")
	Implicit []string

	compileOnce sync.Once
	compiled    []bracket.Expr
}

// Compiled parses the implicit expressions once and caches the result.
func (d *BracketDefinition) Compiled() []bracket.Expr {
	d.compileOnce.Do(func() {
		d.compiled = bracket.ParseAll(d.Implicit)
	})
	return d.compiled
}

// Reference bundles all reference tables for one deployment.
type Reference struct {
	// Counties is the bidirectional county map
	Counties *types.CountyMap

	// AgeGroups maps definition name to its brackets
	AgeGroups map[string]*BracketDefinition

	// Aliases maps display names ("18-Bracket") to definition names
	Aliases map[string]string

	// Regions holds the four tier sets in precedence order
	Regions *region.Sets
}

// AgeGroup resolves a definition by internal name or display alias.
func (r *Reference) AgeGroup(name string) (*BracketDefinition, bool) {
	if def, ok := r.AgeGroups[name]; ok {
		return def, true
	}
	if internal, ok := r.Aliases[name]; ok {
		def, ok := r.AgeGroups[internal]
		return def, ok
	}
	return nil, false
}

// HCL file schema. A reference file is a flat list of county, age_group,
// and region blocks; see defaults.go for the equivalent built-ins.
type hclFile struct {
	Counties  []hclCounty `hcl:"county,block"`
	AgeGroups []hclGroup  `hcl:"age_group,block"`
	Regions   []hclRegion `hcl:"region,block"`
}

type hclCounty struct {
	Name string `hcl:"name,label"`
	Code int    `hcl:"code"`
}

type hclGroup struct {
	Name     string   `hcl:"name,label"`
	Alias    string   `hcl:"alias,optional"`
	Explicit []string `hcl:"explicit,optional"`
	Implicit []string `hcl:"implicit,optional"`
}

type hclRegion struct {
	Label    string `hcl:"label,label"`
	Tier     int    `hcl:"tier"`
	Counties []int  `hcl:"counties"`
}

// Load reads a reference file. A missing path falls back to the built-in
// Illinois reference data; a malformed file is a hard error.
func Load(path string) (*Reference, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Warn("reference file not found, using built-in defaults",
			zap.String("path", path))
		return Default(), nil
	}

	var file hclFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.RefData("decoding reference file", err).
			WithContext("path", path)
	}

	nameToCode := make(map[string]int, len(file.Counties))
	for _, c := range file.Counties {
		nameToCode[c.Name] = c.Code
	}

	groups := make(map[string]*BracketDefinition, len(file.AgeGroups))
	aliases := make(map[string]string)
	for _, g := range file.AgeGroups {
		groups[g.Name] = &BracketDefinition{
			Name:     g.Name,
			Explicit: g.Explicit,
			Implicit: g.Implicit,
		}
		if g.Alias != "" {
			aliases[g.Alias] = g.Name
		}
	}

	tiers := make([]region.Tier, len(file.Regions))
	for _, rg := range file.Regions {
		if rg.Tier < 1 || rg.Tier > len(file.Regions) {
			return nil, errors.RefData("region tier out of range", nil).
				WithContext("label", rg.Label).
				WithContext("tier", rg.Tier)
		}
		tiers[rg.Tier-1] = region.NewTier(rg.Label, rg.Counties)
	}

	ref := &Reference{
		Counties:  types.NewCountyMap(nameToCode),
		AgeGroups: groups,
		Aliases:   aliases,
		Regions:   region.NewSets(tiers...),
	}
	logging.Info("loaded reference data",
		zap.String("path", path),
		zap.Int("counties", ref.Counties.Len()),
		zap.Int("age_groups", len(ref.AgeGroups)),
		zap.Int("region_tiers", len(tiers)))
	return ref, nil
}
