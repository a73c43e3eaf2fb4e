package source

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/fetcher"
	"github.com/forest-rents/stumpage-cli/internal/model"
)

// wvSpecies lists the species price columns in sheet order. The sheet
// carries one $/MBF column per species after the region marker.
var wvSpecies = []string{
	"Walnut", "White Oak", "Red Oak", "Other Oak", "Cherry",
	"Hard Maple", "Soft Maple", "Ash", "Yellow Poplar", "Basswood",
	"Hickory", "White Pine", "Other Pine", "Other Hardwood",
}

// Relative column offsets within one panel of the WV sheet.
const (
	wvColYear    = 0
	wvColRegion  = 2
	wvColUnit    = 3
	wvColSpecies = 4
	wvColPulp    = 23
	// The report lays two year panels side by side; the second starts here.
	wvPanelWidth = 30
)

// WestVirginia parses the WV Division of Forestry annual Excel reports:
// regional sawtimber prices by species in $/MBF plus a mixed pulpwood
// price in $/Cord.
type WestVirginia struct{}

func (s *WestVirginia) Code() string { return "WV" }
func (s *WestVirginia) Name() string {
	return "West Virginia Division of Forestry Timber Market Report"
}
func (s *WestVirginia) PeriodType() model.PeriodType  { return model.PeriodAnnual }
func (s *WestVirginia) Note() string                  { return "WV Division of Forestry Timber Market Report." }
func (s *WestVirginia) Strategy() model.ReplaceStrategy { return model.ReplaceFull }
func (s *WestVirginia) Years() *model.YearRange       { return nil }

func (s *WestVirginia) Manifest() []Report {
	return []Report{
		{URL: "https://wvforestry.com/wp-content/uploads/2023/02/wv_timber_2022.xlsx", Filename: "wv_timber_2022.xlsx"},
		{URL: "https://wvforestry.com/wp-content/uploads/2024/05/wv_timber_2024.xlsx", Filename: "wv_timber_2024.xlsx"},
	}
}

func (s *WestVirginia) Parse(ctx context.Context, dir string) ([]model.RawRecord, error) {
	files, err := sortedFiles(dir, "*.xlsx")
	if err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for _, path := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
		if err != nil {
			return nil, err
		}

		n := len(records)
		records = append(records, s.parsePanel(rows, 0)...)
		records = append(records, s.parsePanel(rows, wvPanelWidth)...)
		zap.L().Info("parsed WV report",
			zap.String("file", path),
			zap.Int("rows", len(records)-n),
		)
	}

	return records, nil
}

// parsePanel walks one year panel of the sheet: a year marker row, then
// per-region pairs of a "REGION N" marker row and a price row beneath it.
func (s *WestVirginia) parsePanel(rows [][]string, base int) []model.RawRecord {
	var records []model.RawRecord
	year := 0

	for i, row := range rows {
		if y := parseYear(cell(row, base+wvColYear)); y != 0 {
			year = y
		}

		region := cell(row, base+wvColRegion)
		if !strings.HasPrefix(strings.ToUpper(region), "REGION") || i+1 >= len(rows) {
			continue
		}

		priceRow := rows[i+1]
		if cell(priceRow, base+wvColUnit) != "$/MBF" {
			continue
		}

		for j, species := range wvSpecies {
			price := cleanPrice(cell(priceRow, base+wvColSpecies+j))
			if price == nil || *price <= 0 {
				continue
			}
			records = append(records, model.RawRecord{
				Year:     year,
				Region:   region,
				Species:  species,
				Product:  "Stumpage",
				PriceAvg: price,
				Unit:     "$/MBF",
			})
		}

		if pulp := cleanPrice(cell(priceRow, base+wvColPulp)); pulp != nil && *pulp > 0 {
			records = append(records, model.RawRecord{
				Year:     year,
				Region:   region,
				Species:  "Mixed",
				Product:  "Pulpwood",
				PriceAvg: pulp,
				Unit:     "$/Cord",
			})
		}
	}

	return records
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
