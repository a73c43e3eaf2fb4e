// Package normalize maps source-native labels and pricing units onto the
// unified dataset's controlled vocabulary.
package normalize

import "strings"

// Entry maps a raw-label substring to a canonical token. Entries are
// checked in order, so tables must list more specific keys (e.g.
// "mixed hardwood") before more general ones ("hardwood").
type Entry struct {
	Match string `yaml:"match"`
	Token string `yaml:"token"`
}

// LookupTable is an ordered, case-insensitive substring lookup from raw
// source labels to canonical tokens.
type LookupTable []Entry

// Canonical returns the canonical token for a raw label. When no entry
// matches, it returns the fallback token and mapped=false so callers can
// count coverage gaps.
func (t LookupTable) Canonical(raw string) (token string, mapped bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return "", false
	}
	for _, e := range t {
		if strings.Contains(needle, strings.ToLower(e.Match)) {
			return e.Token, true
		}
	}
	return FallbackToken(raw), false
}

// FallbackToken derives a deterministic token from an unmapped label:
// lowercase, with whitespace and hyphens replaced by underscores.
func FallbackToken(raw string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	token := strings.Join(fields, "_")
	return strings.ReplaceAll(token, "-", "_")
}
