package unify

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// ReadDataset reads the unified dataset file in full. A dataset that cannot
// be read must abort the run before anything is written; callers decide
// whether a missing file is permitted (first-run init) via IsNotExist.
func ReadDataset(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "unify: read dataset %s", path)
	}

	var records []model.Record
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "unify: decode dataset %s", path)
	}
	return records, nil
}

// IsNotExist reports whether err stems from a missing dataset file.
func IsNotExist(err error) bool {
	return os.IsNotExist(eris.Cause(err))
}

// WriteDataset rewrites the dataset file in full: a complete replacement is
// written beside the target and atomically moved into place, so an
// interrupted run never leaves a truncated dataset. The header row and
// column order are fixed by the Record field order.
func WriteDataset(path string, records []model.Record) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "unify: encode dataset")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "unify: create dataset dir %s", dir)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "unify: write dataset %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return eris.Wrapf(err, "unify: replace dataset %s", path)
	}
	return nil
}

// SortDataset orders records by (source, year, quarter) with null quarters
// last, the fixed output order of the dataset file.
func SortDataset(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return quarterRank(a.Quarter) < quarterRank(b.Quarter)
	})
}

func quarterRank(q *int) int {
	if q == nil {
		return 1 << 30
	}
	return *q
}
