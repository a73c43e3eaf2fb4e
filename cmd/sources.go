package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List registered price report sources",
	RunE: func(_ *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tCADENCE\tSTRATEGY\tNAME")
		for _, src := range newRegistry().All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.Code(), src.PeriodType(), src.Strategy(), src.Name())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
