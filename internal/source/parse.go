package source

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// cleanPrice parses a price cell, stripping "$" and thousands separators.
// Returns nil for empty cells and the "*" no-data marker.
func cleanPrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" || s == "**" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseYear parses a cell as a plausible calendar year, or 0.
func parseYear(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ".0"))
	v, err := strconv.Atoi(s)
	if err != nil || v < 1900 || v > 2100 {
		return 0
	}
	return v
}

// mapColumns builds a lowercase column name -> index map from a header row.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// getCol gets a column value by lowercase name, or "" when absent.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// sortedFiles returns the files under dir matching pattern, sorted by name.
// Parsers emit records in file order, so this fixes the dedupe tie-break
// order across runs.
func sortedFiles(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
