package unify

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// IntegrateOptions selects how one source's batch is merged into the
// dataset. The strategy is an explicit parameter per run, never
// auto-detected from the data.
type IntegrateOptions struct {
	Source      string
	Strategy    model.ReplaceStrategy
	Years       *model.YearRange // required for ReplaceWindowed
	DatasetPath string
	// Init permits starting a brand-new dataset file. Without it a missing
	// dataset is fatal: continuing would silently discard prior history.
	Init bool
}

// MergeStats reports what Integrate changed.
type MergeStats struct {
	RowsRemoved int
	RowsAdded   int
	DatasetSize int
}

// Integrate merges a freshly assembled batch for one source into the
// unified dataset: read-full, prune per strategy, append, dedupe, sort,
// write-full. The write is atomic; nothing is written if the existing
// dataset cannot be read.
func Integrate(batch []model.Record, opts IntegrateOptions) (*MergeStats, error) {
	switch opts.Strategy {
	case model.ReplaceFull, model.ReplaceWindowed, model.ReplaceAppend:
	default:
		return nil, eris.Errorf("unify: unknown replace strategy %q", opts.Strategy)
	}
	if opts.Strategy == model.ReplaceWindowed && opts.Years == nil {
		return nil, eris.New("unify: windowed replace requires a year range")
	}
	for _, r := range batch {
		if r.Source != opts.Source {
			return nil, eris.Errorf("unify: batch row for source %q in %q integration", r.Source, opts.Source)
		}
	}

	existing, err := ReadDataset(opts.DatasetPath)
	if err != nil {
		if opts.Init && IsNotExist(err) {
			existing = nil
		} else {
			return nil, err
		}
	}

	batch = Dedupe(batch)

	kept, removed := prune(existing, opts)

	merged := make([]model.Record, 0, len(kept)+len(batch))
	merged = append(merged, kept...)
	merged = append(merged, batch...)

	// The batch can still collide with an untouched row (e.g. an appended
	// quarter a prior windowed run already covered); the batch comes last,
	// so last-wins keeps the fresh row. Shadowed rows count as removed so
	// removed/added reconcile with the final size.
	before := len(merged)
	merged = Dedupe(merged)
	removed += before - len(merged)

	if err := VerifyUnique(merged); err != nil {
		return nil, err
	}

	SortDataset(merged)

	if err := WriteDataset(opts.DatasetPath, merged); err != nil {
		return nil, err
	}

	zap.L().Info("dataset integrated",
		zap.String("source", opts.Source),
		zap.String("strategy", string(opts.Strategy)),
		zap.Int("rows_removed", removed),
		zap.Int("rows_added", len(batch)),
		zap.Int("dataset_size", len(merged)),
	)

	return &MergeStats{
		RowsRemoved: removed,
		RowsAdded:   len(batch),
		DatasetSize: len(merged),
	}, nil
}

// prune drops the existing rows the strategy replaces and returns the
// survivors plus the number removed.
func prune(existing []model.Record, opts IntegrateOptions) ([]model.Record, int) {
	if opts.Strategy == model.ReplaceAppend {
		return existing, 0
	}

	kept := make([]model.Record, 0, len(existing))
	removed := 0
	for _, r := range existing {
		if r.Source == opts.Source && (opts.Strategy == model.ReplaceFull || opts.Years.Contains(r.Year)) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}
