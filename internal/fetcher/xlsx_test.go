package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Prices")
	require.NoError(t, err)

	for _, row := range [][]string{
		{"Year", "Species", "Price"},
		{"2021", "Red Oak", "312.50"},
		{"2021", "White Oak", "280.00"},
	} {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestWorkbook(t)

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Year", "Species", "Price"}, rows[0])
	assert.Equal(t, []string{"2021", "Red Oak", "312.50"}, rows[1])
}

func TestReadXLSXSkipRows(t *testing.T) {
	path := writeTestWorkbook(t)

	rows, err := ReadXLSX(path, XLSXOptions{SkipRows: 1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2021", rows[0][0])
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := writeTestWorkbook(t)

	t.Run("by name", func(t *testing.T) {
		rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Prices"})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ReadXLSX(path, XLSXOptions{SheetName: "Nope"})
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
		assert.Error(t, err)
	})
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	assert.Error(t, err)
}
