package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// wvRow builds one sheet row wide enough for two panels, with values at the
// given column indexes.
func wvRow(cells map[int]string) []string {
	row := make([]string, 2*wvPanelWidth)
	for i, v := range cells {
		row[i] = v
	}
	return row
}

func TestWestVirginiaParsePanel(t *testing.T) {
	rows := [][]string{
		wvRow(map[int]string{wvColYear: "2021"}),
		wvRow(map[int]string{wvColRegion: "REGION 1"}),
		wvRow(map[int]string{
			wvColUnit:        "$/MBF",
			wvColSpecies:     "$1,200.50", // Walnut
			wvColSpecies + 1: "800.00",    // White Oak
			wvColSpecies + 2: "*",         // Red Oak, no data
			wvColPulp:        "12.00",
		}),
		wvRow(map[int]string{wvColRegion: "REGION 2"}),
		wvRow(map[int]string{
			wvColUnit:    "$/MBF",
			wvColSpecies: "950.00",
		}),
	}

	s := &WestVirginia{}
	records := s.parsePanel(rows, 0)
	require.Len(t, records, 4)

	walnut := records[0]
	assert.Equal(t, 2021, walnut.Year)
	assert.Equal(t, "REGION 1", walnut.Region)
	assert.Equal(t, "Walnut", walnut.Species)
	assert.Equal(t, "Stumpage", walnut.Product)
	assert.Equal(t, "$/MBF", walnut.Unit)
	require.NotNil(t, walnut.PriceAvg)
	assert.Equal(t, 1200.50, *walnut.PriceAvg)

	assert.Equal(t, "White Oak", records[1].Species)

	pulp := records[2]
	assert.Equal(t, "Mixed", pulp.Species)
	assert.Equal(t, "Pulpwood", pulp.Product)
	assert.Equal(t, "$/Cord", pulp.Unit)
	require.NotNil(t, pulp.PriceAvg)
	assert.Equal(t, 12.00, *pulp.PriceAvg)

	region2 := records[3]
	assert.Equal(t, "REGION 2", region2.Region)
	assert.Equal(t, 2021, region2.Year) // year carries across regions
}

func TestWestVirginiaParsePanelSecondPanel(t *testing.T) {
	rows := [][]string{
		wvRow(map[int]string{wvColYear: "2020", wvPanelWidth + wvColYear: "2021"}),
		wvRow(map[int]string{wvColRegion: "REGION 1", wvPanelWidth + wvColRegion: "REGION 1"}),
		wvRow(map[int]string{
			wvColUnit:                   "$/MBF",
			wvColSpecies:                "1000.00",
			wvPanelWidth + wvColUnit:    "$/MBF",
			wvPanelWidth + wvColSpecies: "1100.00",
		}),
	}

	s := &WestVirginia{}

	left := s.parsePanel(rows, 0)
	require.Len(t, left, 1)
	assert.Equal(t, 2020, left[0].Year)
	assert.Equal(t, 1000.00, *left[0].PriceAvg)

	right := s.parsePanel(rows, wvPanelWidth)
	require.Len(t, right, 1)
	assert.Equal(t, 2021, right[0].Year)
	assert.Equal(t, 1100.00, *right[0].PriceAvg)
}

func TestWestVirginiaParsePanelSkipsNonPriceRows(t *testing.T) {
	rows := [][]string{
		wvRow(map[int]string{wvColYear: "2021"}),
		// Region marker followed by a header row, not a price row.
		wvRow(map[int]string{wvColRegion: "REGION 1"}),
		wvRow(map[int]string{wvColUnit: "Species"}),
		// Region marker at the end of the sheet.
		wvRow(map[int]string{wvColRegion: "REGION 2"}),
	}

	s := &WestVirginia{}
	assert.Empty(t, s.parsePanel(rows, 0))
}

func TestWestVirginiaMetadata(t *testing.T) {
	s := &WestVirginia{}
	assert.Equal(t, "WV", s.Code())
	assert.Equal(t, model.PeriodAnnual, s.PeriodType())
	assert.Equal(t, model.ReplaceFull, s.Strategy())
	assert.Nil(t, s.Years())
	assert.NotEmpty(t, s.Manifest())
}
