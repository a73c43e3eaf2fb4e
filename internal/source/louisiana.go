package source

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/model"
	"github.com/forest-rents/stumpage-cli/internal/pdftext"
)

// laFilePattern extracts year and quarter from bulletin filenames like
// "la_forestry_2023_q1.pdf".
var laFilePattern = regexp.MustCompile(`la_forestry_(\d{4})_q([1-4])\.pdf$`)

// laRow describes one product row of the bulletin price table.
type laRow struct {
	label   string // lowercase row label prefix in the extracted text
	species string
	product string
	unit    string
}

// Row labels repeat between the sawtimber and cordwood sections, so rows
// are matched per section. Within a section, more specific labels come
// first ("mixed hardwood" would otherwise never be reached after "pine").
var (
	laSawtimberRows = []laRow{
		{"mixed hardwood", "Mixed Hardwood", "Sawtimber", "$/MBF"},
		{"cypress", "Cypress", "Sawtimber", "$/MBF"},
		{"pine", "Pine", "Sawtimber", "$/MBF"},
		{"poles", "Poles", "Poles", "$/Ton"},
	}
	laCordwoodRows = []laRow{
		{"chip-n-saw", "Chip-N-Saw", "Chip-N-Saw", "$/Standard Cord"},
		{"mixed hardwood", "Mixed Hardwood", "Pulpwood", "$/Standard Cord"},
		{"cypress", "Cypress", "Pulpwood", "$/Standard Cord"},
		{"pine", "Pine", "Pulpwood", "$/Standard Cord"},
	}
)

// Louisiana parses the LDAF Office of Forestry quarterly bulletins. The
// price table reports Areas 1-5 plus a state average per product; the
// previous-quarter and year-ago comparison columns are ignored.
type Louisiana struct {
	extractor pdftext.Extractor
}

// NewLouisiana creates the LA adapter with the given PDF text extractor.
func NewLouisiana(extractor pdftext.Extractor) *Louisiana {
	return &Louisiana{extractor: extractor}
}

func (s *Louisiana) Code() string { return "LA" }
func (s *Louisiana) Name() string {
	return "Louisiana Office of Forestry Quarterly Stumpage Report"
}
func (s *Louisiana) PeriodType() model.PeriodType    { return model.PeriodQuarterly }
func (s *Louisiana) Note() string                    { return "LA Office of Forestry quarterly report." }
func (s *Louisiana) Strategy() model.ReplaceStrategy { return model.ReplaceFull }
func (s *Louisiana) Years() *model.YearRange         { return nil }

func (s *Louisiana) Manifest() []Report {
	return []Report{
		{URL: "https://assets.ctfassets.net/pc5e1rlgfrov/2BPAjKpb5al6YSPxhfDCcl/5730bbac00ea10c75ac27c622b8494a4/1ST_QTR_2024_report.pdf", Filename: "la_forestry_2024_q1.pdf"},
		{URL: "https://assets.ctfassets.net/pc5e1rlgfrov/5as3lfrdQBUqFDM3rielMC/11db607683e90a8070b60f8103aa3c92/2nd_QTR_2024_Forestry_Report.pdf", Filename: "la_forestry_2024_q2.pdf"},
		{URL: "https://assets.ctfassets.net/pc5e1rlgfrov/6VIQMVI9DGPbfr3VFZ2ydz/d797e61a10b871df681bd550aa7c6bc4/3rd_QTR_2024_forest_report_of_products.pdf", Filename: "la_forestry_2024_q3.pdf"},
		{URL: "https://assets.ctfassets.net/pc5e1rlgfrov/014vX8zbsMDeBl7HnVhbId/1b5f1a6967fd07f70e0cce563a25bc1d/4TH_QTR_2024.pdf", Filename: "la_forestry_2024_q4.pdf"},
	}
}

func (s *Louisiana) Parse(ctx context.Context, dir string) ([]model.RawRecord, error) {
	files, err := sortedFiles(dir, "la_forestry_*.pdf")
	if err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for _, path := range files {
		m := laFilePattern.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])

		text, err := s.extractor.ExtractText(ctx, path)
		if err != nil {
			return nil, eris.Wrapf(err, "la: extract %s", path)
		}

		rows := ParseBulletinText(text, year, quarter)
		records = append(records, rows...)
		zap.L().Info("parsed LA bulletin",
			zap.String("file", path),
			zap.Int("year", year),
			zap.Int("quarter", quarter),
			zap.Int("rows", len(rows)),
		)
	}

	return records, nil
}

// ParseBulletinText parses the layout-preserved text of one bulletin.
// Exported so the table extraction can be tested on text fixtures without
// pdftotext installed.
func ParseBulletinText(text string, year, quarter int) []model.RawRecord {
	var records []model.RawRecord

	rows := laSawtimberRows
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		// Section headers switch the row table and its units.
		if strings.Contains(lower, "cordwood") {
			rows = laCordwoodRows
			continue
		}
		if strings.Contains(lower, "sawtimber") {
			rows = laSawtimberRows
			continue
		}

		row, rest := matchRow(rows, lower, trimmed)
		if row == nil {
			continue
		}

		prices := priceColumns(rest)
		for i, price := range prices {
			if i >= 6 {
				break // previous quarter / year ago comparison columns
			}
			if price == nil {
				continue
			}
			region := "State Average"
			if i < 5 {
				region = "Area " + strconv.Itoa(i+1)
			}
			records = append(records, model.RawRecord{
				Year:     year,
				Quarter:  &quarter,
				Region:   region,
				Species:  row.species,
				Product:  row.product,
				PriceAvg: price,
				Unit:     row.unit,
			})
		}
	}

	return records
}

// matchRow finds the product row whose label prefixes the line and returns
// the remainder of the line holding the price columns.
func matchRow(rows []laRow, lower, trimmed string) (*laRow, string) {
	for i := range rows {
		if strings.HasPrefix(lower, rows[i].label) {
			return &rows[i], trimmed[len(rows[i].label):]
		}
	}
	return nil, ""
}

// priceColumns tokenizes the tail of a product line. Any token that is not
// a parseable price ("*", "N/A", footnote markers) holds its column
// position as no-data so the Areas after it keep their index.
func priceColumns(rest string) []*float64 {
	fields := strings.Fields(rest)
	prices := make([]*float64, 0, len(fields))
	for _, f := range fields {
		prices = append(prices, cleanPrice(f))
	}
	return prices
}
