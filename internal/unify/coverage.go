package unify

import (
	"sort"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// SourceCoverage summarizes one source's footprint in the dataset.
type SourceCoverage struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	MinYear int    `json:"min_year"`
	MaxYear int    `json:"max_year"`
}

// Coverage computes per-source totals and year ranges, ordered by source.
func Coverage(records []model.Record) []SourceCoverage {
	bySource := make(map[string]*SourceCoverage)
	for _, r := range records {
		c, ok := bySource[r.Source]
		if !ok {
			c = &SourceCoverage{Source: r.Source, MinYear: r.Year, MaxYear: r.Year}
			bySource[r.Source] = c
		}
		c.Rows++
		if r.Year < c.MinYear {
			c.MinYear = r.Year
		}
		if r.Year > c.MaxYear {
			c.MaxYear = r.Year
		}
	}

	out := make([]SourceCoverage, 0, len(bySource))
	for _, c := range bySource {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
