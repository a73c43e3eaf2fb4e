package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/forest-rents/stumpage-cli/internal/catalog"
	"github.com/forest-rents/stumpage-cli/internal/unify"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset coverage per source and recent integration runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		p := message.NewPrinter(language.English)

		records, err := unify.ReadDataset(cfg.Data.DatasetPath)
		switch {
		case err != nil && unify.IsNotExist(err):
			fmt.Printf("No dataset at %s yet.\n", cfg.Data.DatasetPath)
		case err != nil:
			return err
		default:
			p.Printf("Dataset: %s (%d rows)\n\n", cfg.Data.DatasetPath, len(records))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tROWS\tYEARS")
			for _, c := range unify.Coverage(records) {
				fmt.Fprintf(w, "%s\t%d\t%d-%d\n", c.Source, c.Rows, c.MinYear, c.MaxYear)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		cat, err := catalog.Open(cfg.Data.CatalogPath)
		if err != nil {
			return err
		}
		defer cat.Close() //nolint:errcheck
		if err := cat.Migrate(ctx); err != nil {
			return err
		}

		runs, err := cat.ListRuns(ctx, statusRuns)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return nil
		}

		fmt.Println("\nRecent runs:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSOURCE\tSTRATEGY\tADDED\tREMOVED\tSKIPPED\tDATASET")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Source, run.Strategy,
				run.Summary.RowsAdded, run.Summary.RowsRemoved,
				run.Summary.RowsSkipped, run.Summary.DatasetSize,
			)
		}
		return w.Flush()
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusRuns, "runs", 10, "number of recent runs to show")
	rootCmd.AddCommand(statusCmd)
}
