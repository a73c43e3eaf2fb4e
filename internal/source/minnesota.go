package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// Minnesota parses the MN DNR Forest Resources stumpage CSV extracts:
// annual statewide prices for public-agency timber sales, quoted per cord
// for pulpwood and per MBF for sawtimber.
type Minnesota struct{}

func (s *Minnesota) Code() string { return "MN" }
func (s *Minnesota) Name() string {
	return "Minnesota DNR Forest Resources Report"
}
func (s *Minnesota) PeriodType() model.PeriodType { return model.PeriodAnnual }
func (s *Minnesota) Note() string                 { return "MN Forest Resources Report." }

// Strategy is windowed: the Forest Resources series starts in 2013 and
// replaces that span, preserving the older 2006-2012 series extracted from
// the prior report format.
func (s *Minnesota) Strategy() model.ReplaceStrategy { return model.ReplaceWindowed }
func (s *Minnesota) Years() *model.YearRange {
	return &model.YearRange{Min: 2013, Max: 9999} // open-ended
}

func (s *Minnesota) Manifest() []Report {
	return []Report{
		{URL: "https://files.dnr.state.mn.us/forestry/um/stumpage-price-review-2023.pdf", Filename: "stumpage-price-review-2023.pdf"},
	}
}

func (s *Minnesota) Parse(ctx context.Context, dir string) ([]model.RawRecord, error) {
	files, err := sortedFiles(dir, "mn_stumpage*.csv")
	if err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for _, path := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rows, err := s.parseFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
		zap.L().Info("parsed MN extract",
			zap.String("file", path),
			zap.Int("rows", len(rows)),
		)
	}

	return records, nil
}

func (s *Minnesota) parseFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "mn: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "mn: read header %s", path)
	}
	colIdx := mapColumns(header)

	var records []model.RawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "mn: read row %s", path)
		}

		product := getCol(record, colIdx, "product_type")
		detail := "Public agencies stumpage."
		if product == "pulp_bolts" {
			detail = "Pulp and bolts combined price."
		}

		records = append(records, model.RawRecord{
			Year:     parseYear(getCol(record, colIdx, "year")),
			Species:  getCol(record, colIdx, "species"),
			Product:  product,
			PriceAvg: cleanPrice(getCol(record, colIdx, "price")),
			Unit:     getCol(record, colIdx, "unit"),
			Detail:   detail,
		})
	}

	return records, nil
}
