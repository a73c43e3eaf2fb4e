// Package source holds the per-source report adapters: each adapter knows
// where one agency publishes its reports, how to parse the files it
// downloads, and which constants govern its integration.
package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/forest-rents/stumpage-cli/internal/model"
	"github.com/forest-rents/stumpage-cli/internal/pdftext"
)

// Report names one remote report file in a source's manifest.
type Report struct {
	URL      string
	Filename string
}

// Source defines the adapter each price-report series must implement.
type Source interface {
	// Code returns the short source code used in the dataset (e.g. "WV").
	Code() string

	// Name returns the publishing agency/report series.
	Name() string

	// PeriodType returns the source's reporting cadence. It is a static
	// constant of the series, never inferred from parsed data.
	PeriodType() model.PeriodType

	// Note returns the fixed provenance string attached to every record.
	Note() string

	// Strategy returns the replace strategy this source's integrations use
	// by default. The CLI can override it per run.
	Strategy() model.ReplaceStrategy

	// Years returns the default year window for windowed sources, nil
	// otherwise.
	Years() *model.YearRange

	// Manifest lists the report files the fetch command downloads.
	Manifest() []Report

	// Parse reads the downloaded report files under dir and returns raw
	// price observations in deterministic (filename) order.
	Parse(ctx context.Context, dir string) ([]model.RawRecord, error)
}

// Registry maps source codes to their adapters.
type Registry struct {
	sources map[string]Source
	order   []string // registration order for deterministic iteration
}

// NewRegistry creates a registry populated with all supported sources.
func NewRegistry(extractor pdftext.Extractor) *Registry {
	r := &Registry{sources: make(map[string]Source)}

	r.Register(&WestVirginia{})
	r.Register(&Minnesota{})
	r.Register(NewLouisiana(extractor))

	return r
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	code := s.Code()
	r.sources[code] = s
	r.order = append(r.order, code)
}

// Get returns a source by code.
func (r *Registry) Get(code string) (Source, error) {
	s, ok := r.sources[code]
	if !ok {
		return nil, eris.Errorf("source: unknown source %q", code)
	}
	return s, nil
}

// All returns all sources in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.sources[code])
	}
	return out
}

// Codes returns all registered source codes in registration order.
func (r *Registry) Codes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
