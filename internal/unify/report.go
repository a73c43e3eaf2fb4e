package unify

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// FormatSummary renders a human-readable integration report.
func FormatSummary(source string, strategy model.ReplaceStrategy, years *model.YearRange, s model.RunSummary) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "# Integration: %s (%s", source, strategy)
	if strategy == model.ReplaceWindowed && years != nil {
		fmt.Fprintf(&b, " %d-%d", years.Min, years.Max)
	}
	b.WriteString(")\n\n")

	p.Fprintf(&b, "- Rows in: %d\n", s.RowsIn)
	p.Fprintf(&b, "- Rows skipped: %d\n", s.RowsSkipped)
	if s.UnknownUnits > 0 {
		p.Fprintf(&b, "- Unknown units (no per-ton conversion): %d\n", s.UnknownUnits)
	}
	if s.UnmappedLabels > 0 {
		p.Fprintf(&b, "- Unmapped labels (fallback token used): %d\n", s.UnmappedLabels)
	}
	p.Fprintf(&b, "- Rows removed: %d\n", s.RowsRemoved)
	p.Fprintf(&b, "- Rows added: %d\n", s.RowsAdded)
	p.Fprintf(&b, "- Dataset size: %d rows\n", s.DatasetSize)

	return b.String()
}
