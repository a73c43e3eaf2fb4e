package normalize

import (
	"math"
	"strings"
)

// Factor converts a native pricing unit to a per-ton basis for one species
// category. An empty Category matches any category. The ratios are declared
// approximations carried as configuration, not measured per record.
type Factor struct {
	Unit     string  `yaml:"unit"`
	Category string  `yaml:"category,omitempty"`
	Value    float64 `yaml:"factor"`
}

// ConversionTable resolves (unit, category) pairs to conversion factors.
// Entries are checked in order; the first entry whose unit matches
// (case-insensitively) and whose category is empty or equal wins.
type ConversionTable struct {
	Factors []Factor `yaml:"factors"`
}

// Lookup returns the conversion factor for a unit and species category,
// or ok=false when the pair is not in the table.
func (t *ConversionTable) Lookup(unit, category string) (float64, bool) {
	unit = strings.TrimSpace(unit)
	for _, f := range t.Factors {
		if !strings.EqualFold(f.Unit, unit) {
			continue
		}
		if f.Category == "" || strings.EqualFold(f.Category, category) {
			return f.Value, true
		}
	}
	return 0, false
}

// Convert derives (price_per_ton, conversion_factor) from an average price
// in the source's native unit. Unknown unit/category pairs yield nil for
// both: conversion is best-effort and the record is retained regardless.
func (t *ConversionTable) Convert(priceAvg float64, unit, category string) (pricePerTon, factor *float64) {
	f, ok := t.Lookup(unit, category)
	if !ok {
		return nil, nil
	}
	p := round2(priceAvg / f)
	return &p, &f
}

// WithOverrides returns a table that consults the given factors before the
// receiver's own entries. The receiver is not modified.
func (t *ConversionTable) WithOverrides(factors []Factor) *ConversionTable {
	if len(factors) == 0 {
		return t
	}
	merged := make([]Factor, 0, len(factors)+len(t.Factors))
	merged = append(merged, factors...)
	merged = append(merged, t.Factors...)
	return &ConversionTable{Factors: merged}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
