package normalize

import (
	"embed"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// SourceTables bundles the per-source lookup tables. They are versioned
// alongside the code as embedded YAML, not supplied at runtime.
type SourceTables struct {
	Species    LookupTable `yaml:"species"`
	Regions    LookupTable `yaml:"regions"`
	Products   LookupTable `yaml:"products"`
	Categories LookupTable `yaml:"categories"`
	// Factors are per-source conversion overrides consulted before the
	// global table (e.g. WV cordwood at 2.5 tons/cord vs the 2.3 default).
	Factors []Factor `yaml:"factors"`
}

// Category returns the species category ("softwood", "hardwood") used to
// select a conversion factor. Unmapped species default to hardwood, the
// conservative factor for the eastern sources this tool covers.
func (t *SourceTables) Category(rawSpecies string) string {
	if c, ok := t.Categories.Canonical(rawSpecies); ok {
		return c
	}
	return "hardwood"
}

// LoadSourceTables loads the embedded lookup tables for a source code.
func LoadSourceTables(source string) (*SourceTables, error) {
	path := fmt.Sprintf("tables/%s.yaml", strings.ToLower(source))
	data, err := tablesFS.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "normalize: no lookup tables for source %q", source)
	}
	var t SourceTables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrapf(err, "normalize: parse %s", path)
	}
	return &t, nil
}

// LoadConversionTable loads the embedded default conversion-factor table.
func LoadConversionTable() (*ConversionTable, error) {
	data, err := tablesFS.ReadFile("tables/conversions.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "normalize: read conversions table")
	}
	return ParseConversionTable(data)
}

// ParseConversionTable parses a YAML conversion-factor table. Exposed so a
// config-supplied override file can replace the embedded defaults.
func ParseConversionTable(data []byte) (*ConversionTable, error) {
	var t ConversionTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "normalize: parse conversions table")
	}
	if len(t.Factors) == 0 {
		return nil, eris.New("normalize: conversions table has no factors")
	}
	return &t, nil
}
