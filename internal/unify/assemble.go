// Package unify normalizes per-source price observations into the unified
// stumpage dataset and merges fresh batches into it.
package unify

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/model"
	"github.com/forest-rents/stumpage-cli/internal/normalize"
)

// AssembleOptions carries the per-source constants and lookup tables the
// assembler needs. PeriodType and Note are fixed per source, never inferred
// from the data.
type AssembleOptions struct {
	Source      string
	PeriodType  model.PeriodType
	Note        string
	Tables      *normalize.SourceTables
	Conversions *normalize.ConversionTable
}

// AssembleStats counts per-row anomalies. None of them are fatal; they are
// surfaced in the run summary so coverage gaps stay visible.
type AssembleStats struct {
	RowsIn         int
	RowsSkipped    int
	UnknownUnits   int
	UnmappedLabels int
}

// Assemble builds unified records from raw parser output. Rows with a
// missing or non-positive price, a missing year or species, or an
// inconsistent low/avg/high ordering are skipped and counted, never raised.
func Assemble(raws []model.RawRecord, opts AssembleOptions) ([]model.Record, AssembleStats) {
	log := zap.L().With(zap.String("source", opts.Source))
	conversions := opts.Conversions.WithOverrides(opts.Tables.Factors)

	stats := AssembleStats{RowsIn: len(raws)}
	records := make([]model.Record, 0, len(raws))

	for _, raw := range raws {
		if raw.PriceAvg == nil || *raw.PriceAvg <= 0 {
			stats.RowsSkipped++
			continue
		}
		if raw.Year == 0 || strings.TrimSpace(raw.Species) == "" {
			stats.RowsSkipped++
			continue
		}
		if badPriceRange(raw) {
			stats.RowsSkipped++
			log.Warn("price ordering violation, row rejected",
				zap.Int("year", raw.Year),
				zap.String("species", raw.Species),
				zap.Float64("price_avg", *raw.PriceAvg),
			)
			continue
		}

		species, ok := opts.Tables.Species.Canonical(raw.Species)
		if !ok {
			stats.UnmappedLabels++
		}

		region := "Statewide"
		if strings.TrimSpace(raw.Region) != "" {
			var mapped bool
			region, mapped = opts.Tables.Regions.Canonical(raw.Region)
			if !mapped {
				stats.UnmappedLabels++
			}
		}

		product, ok := opts.Tables.Products.Canonical(raw.Product)
		if !ok {
			stats.UnmappedLabels++
		}

		category := opts.Tables.Category(raw.Species)
		perTon, factor := conversions.Convert(*raw.PriceAvg, raw.Unit, category)
		if perTon == nil {
			stats.UnknownUnits++
		}

		// Quarter only carries meaning for quarterly sources.
		var quarter *int
		if opts.PeriodType == model.PeriodQuarterly && raw.Quarter != nil {
			q := *raw.Quarter
			quarter = &q
		}

		notes := opts.Note
		if raw.Detail != "" {
			notes = fmt.Sprintf("%s %s", notes, raw.Detail)
		}

		records = append(records, model.Record{
			Source:           opts.Source,
			Year:             raw.Year,
			Quarter:          quarter,
			PeriodType:       string(opts.PeriodType),
			Region:           region,
			County:           raw.County,
			Species:          species,
			ProductType:      product,
			PriceAvg:         *raw.PriceAvg,
			PriceLow:         raw.PriceLow,
			PriceHigh:        raw.PriceHigh,
			Unit:             raw.Unit,
			PricePerTon:      perTon,
			ConversionFactor: factor,
			SampleSize:       raw.SampleSize,
			Notes:            notes,
		})
	}

	return records, stats
}

// badPriceRange reports a low/avg/high ordering violation. Bounds are only
// checked when present; sources that report an average alone always pass.
func badPriceRange(raw model.RawRecord) bool {
	avg := *raw.PriceAvg
	if raw.PriceLow != nil && *raw.PriceLow > avg {
		return true
	}
	if raw.PriceHigh != nil && *raw.PriceHigh < avg {
		return true
	}
	if raw.PriceLow != nil && raw.PriceHigh != nil && *raw.PriceLow > *raw.PriceHigh {
		return true
	}
	return false
}
