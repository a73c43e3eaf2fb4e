package unify

import (
	"github.com/rotisserie/eris"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// Dedupe returns exactly one record per composite key, keeping the last
// occurrence in input order. Overlapping bulletins report the same
// observation; the file processed later is taken as the correction. The
// function is order-sensitive by contract, so callers must order inputs
// deterministically (parsers sort report files by name) before calling it.
func Dedupe(records []model.Record) []model.Record {
	last := make(map[model.Key]int, len(records))
	for i, r := range records {
		last[r.Key()] = i
	}

	out := make([]model.Record, 0, len(last))
	for i, r := range records {
		if last[r.Key()] == i {
			out = append(out, r)
		}
	}
	return out
}

// VerifyUnique returns an error naming the first duplicated composite key,
// or nil when every key appears once. A duplicate after Dedupe has run is
// an invariant violation, not a recoverable condition.
func VerifyUnique(records []model.Record) error {
	seen := make(map[model.Key]struct{}, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k]; dup {
			return eris.Errorf("unify: duplicate composite key %s", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
