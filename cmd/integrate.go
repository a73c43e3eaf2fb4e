package main

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/catalog"
	"github.com/forest-rents/stumpage-cli/internal/model"
	"github.com/forest-rents/stumpage-cli/internal/normalize"
	"github.com/forest-rents/stumpage-cli/internal/unify"
)

var (
	integrateSource   string
	integrateInput    string
	integrateStrategy string
	integrateYears    string
	integrateInit     bool
)

var yearsPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Parse a source's report files and merge them into the unified dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		src, err := newRegistry().Get(integrateSource)
		if err != nil {
			return err
		}

		strategy := src.Strategy()
		if integrateStrategy != "" {
			strategy, err = model.ParseStrategy(integrateStrategy)
			if err != nil {
				return err
			}
		}

		years := src.Years()
		if integrateYears != "" {
			years, err = parseYearRange(integrateYears)
			if err != nil {
				return err
			}
		}

		tables, err := normalize.LoadSourceTables(src.Code())
		if err != nil {
			return err
		}
		conversions, err := loadConversions()
		if err != nil {
			return err
		}

		input := integrateInput
		if input == "" {
			input = cfg.Data.SourceRawDir(src.Code())
		}

		raws, err := src.Parse(ctx, input)
		if err != nil {
			return eris.Wrapf(err, "parse source %s", src.Code())
		}

		summary, err := unify.Run(raws,
			unify.AssembleOptions{
				Source:      src.Code(),
				PeriodType:  src.PeriodType(),
				Note:        src.Note(),
				Tables:      tables,
				Conversions: conversions,
			},
			unify.IntegrateOptions{
				Source:      src.Code(),
				Strategy:    strategy,
				Years:       years,
				DatasetPath: cfg.Data.DatasetPath,
				Init:        integrateInit,
			},
		)
		if err != nil {
			return err
		}

		cat, err := catalog.Open(cfg.Data.CatalogPath)
		if err != nil {
			return err
		}
		defer cat.Close() //nolint:errcheck
		if err := cat.Migrate(ctx); err != nil {
			return err
		}
		run, err := cat.RecordRun(ctx, src.Code(), strategy, years, *summary)
		if err != nil {
			return err
		}

		zap.L().Info("integration recorded",
			zap.String("run_id", run.ID),
			zap.String("source", run.Source),
		)

		fmt.Print(unify.FormatSummary(src.Code(), strategy, years, *summary))
		return nil
	},
}

func parseYearRange(s string) (*model.YearRange, error) {
	m := yearsPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, eris.Errorf("invalid year range %q (expected YYYY-YYYY)", s)
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	if lo > hi {
		return nil, eris.Errorf("invalid year range %q: min exceeds max", s)
	}
	return &model.YearRange{Min: lo, Max: hi}, nil
}

func init() {
	integrateCmd.Flags().StringVar(&integrateSource, "source", "", "source code, e.g. WV (required)")
	integrateCmd.Flags().StringVar(&integrateInput, "input", "", "directory of downloaded report files (default: raw dir for the source)")
	integrateCmd.Flags().StringVar(&integrateStrategy, "strategy", "", "replace strategy: full, windowed, or append (default: the source's)")
	integrateCmd.Flags().StringVar(&integrateYears, "years", "", "year window for windowed replace, e.g. 2013-2023")
	integrateCmd.Flags().BoolVar(&integrateInit, "init", false, "permit creating a brand-new dataset file")
	_ = integrateCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(integrateCmd)
}
