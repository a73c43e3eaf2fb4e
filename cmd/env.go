package main

import (
	"os"

	"github.com/rotisserie/eris"

	"github.com/forest-rents/stumpage-cli/internal/normalize"
	"github.com/forest-rents/stumpage-cli/internal/pdftext"
	"github.com/forest-rents/stumpage-cli/internal/source"
)

func newRegistry() *source.Registry {
	return source.NewRegistry(pdftext.New(cfg.PDF.PdfToTextPath))
}

// loadConversions returns the conversion-factor table, honoring a
// config-supplied override file.
func loadConversions() (*normalize.ConversionTable, error) {
	if cfg.Tables.ConversionsPath == "" {
		return normalize.LoadConversionTable()
	}
	data, err := os.ReadFile(cfg.Tables.ConversionsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "read conversions override %s", cfg.Tables.ConversionsPath)
	}
	return normalize.ParseConversionTable(data)
}
