package model

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// PeriodType declares the reporting cadence of a source. It is a static
// per-source constant, never inferred from the data.
type PeriodType string

const (
	PeriodAnnual     PeriodType = "annual"
	PeriodSemiAnnual PeriodType = "semi-annual"
	PeriodQuarterly  PeriodType = "quarterly"
)

// RawRecord is the minimum contract a source parser must produce for one
// price observation. Column names and layout are the parser's concern;
// the pipeline only sees this shape.
type RawRecord struct {
	Year       int
	Quarter    *int
	Region     string
	County     string
	Species    string
	Product    string
	PriceAvg   *float64
	PriceLow   *float64
	PriceHigh  *float64
	Unit       string
	SampleSize *int
	Detail     string // extra per-row note appended to the source's provenance note
}

// Record is one row of the unified stumpage dataset. Field order matches
// the dataset CSV header and must not change between runs.
type Record struct {
	Source           string   `csv:"source"`
	Year             int      `csv:"year"`
	Quarter          *int     `csv:"quarter"`
	PeriodType       string   `csv:"period_type"`
	Region           string   `csv:"region"`
	County           string   `csv:"county"`
	Species          string   `csv:"species"`
	ProductType      string   `csv:"product_type"`
	PriceAvg         float64  `csv:"price_avg"`
	PriceLow         *float64 `csv:"price_low"`
	PriceHigh        *float64 `csv:"price_high"`
	Unit             string   `csv:"unit"`
	PricePerTon      *float64 `csv:"price_per_ton"`
	ConversionFactor *float64 `csv:"conversion_factor"`
	SampleSize       *int     `csv:"sample_size"`
	Notes            string   `csv:"notes"`
}

// Key is the composite key identifying one logical price observation.
// Quarter is 0 for annual and semi-annual records.
type Key struct {
	Source      string
	Year        int
	Quarter     int
	Species     string
	Region      string
	ProductType string
}

// Key returns the record's composite key.
func (r Record) Key() Key {
	q := 0
	if r.Quarter != nil {
		q = *r.Quarter
	}
	return Key{
		Source:      r.Source,
		Year:        r.Year,
		Quarter:     q,
		Species:     r.Species,
		Region:      r.Region,
		ProductType: r.ProductType,
	}
}

// String renders the key for error messages and logs.
func (k Key) String() string {
	return fmt.Sprintf("%s/%d/q%d/%s/%s/%s", k.Source, k.Year, k.Quarter, k.Species, k.Region, k.ProductType)
}

// ReplaceStrategy selects how a source batch is merged into the dataset.
type ReplaceStrategy string

const (
	// ReplaceFull drops all existing rows for the source, then appends.
	ReplaceFull ReplaceStrategy = "full"
	// ReplaceWindowed drops existing rows for the source within a year
	// window, then appends.
	ReplaceWindowed ReplaceStrategy = "windowed"
	// ReplaceAppend appends without removing anything.
	ReplaceAppend ReplaceStrategy = "append"
)

// ParseStrategy converts a CLI string into a ReplaceStrategy.
func ParseStrategy(s string) (ReplaceStrategy, error) {
	switch s {
	case "full":
		return ReplaceFull, nil
	case "windowed":
		return ReplaceWindowed, nil
	case "append":
		return ReplaceAppend, nil
	default:
		return "", eris.Errorf("unknown replace strategy: %q (valid: full, windowed, append)", s)
	}
}

// YearRange bounds a windowed replace, inclusive on both ends.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}
