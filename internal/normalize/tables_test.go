package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceTables(t *testing.T) {
	for _, code := range []string{"WV", "MN", "LA"} {
		t.Run(code, func(t *testing.T) {
			tables, err := LoadSourceTables(code)
			require.NoError(t, err)
			assert.NotEmpty(t, tables.Species)
			assert.NotEmpty(t, tables.Products)
		})
	}

	t.Run("unknown source", func(t *testing.T) {
		_, err := LoadSourceTables("XX")
		assert.Error(t, err)
	})
}

func TestSourceTablesCategory(t *testing.T) {
	wv, err := LoadSourceTables("WV")
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want string
	}{
		{"White Pine", "softwood"},
		{"Red Oak", "hardwood"},
		{"Black Cherry", "hardwood"},
		{"", "hardwood"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wv.Category(tt.raw), "species: %q", tt.raw)
	}
}

func TestWestVirginiaCordOverride(t *testing.T) {
	base, err := LoadConversionTable()
	require.NoError(t, err)

	wv, err := LoadSourceTables("WV")
	require.NoError(t, err)
	require.NotEmpty(t, wv.Factors)

	merged := base.WithOverrides(wv.Factors)
	f, ok := merged.Lookup("$/cord", "hardwood")
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	// Default table keeps the Lake States ratio.
	f, ok = base.Lookup("$/cord", "hardwood")
	require.True(t, ok)
	assert.Equal(t, 2.3, f)
}

func TestLoadConversionTable(t *testing.T) {
	table, err := LoadConversionTable()
	require.NoError(t, err)

	f, ok := table.Lookup("$/ton", "softwood")
	require.True(t, ok)
	assert.Equal(t, 1.0, f)

	f, ok = table.Lookup("$/MBF", "softwood")
	require.True(t, ok)
	assert.Equal(t, 4.0, f)

	f, ok = table.Lookup("$/MBF", "hardwood")
	require.True(t, ok)
	assert.Equal(t, 5.0, f)

	f, ok = table.Lookup("$/Standard Cord", "softwood")
	require.True(t, ok)
	assert.Equal(t, 2.5, f)
}

func TestParseConversionTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		table, err := ParseConversionTable([]byte("factors:\n  - unit: $/ton\n    factor: 1.0\n"))
		require.NoError(t, err)
		f, ok := table.Lookup("$/ton", "")
		require.True(t, ok)
		assert.Equal(t, 1.0, f)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseConversionTable([]byte("factors: []\n"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseConversionTable([]byte("factors: {not a list}"))
		assert.Error(t, err)
	})
}
