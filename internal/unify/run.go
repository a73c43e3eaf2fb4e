package unify

import "github.com/forest-rents/stumpage-cli/internal/model"

// Run assembles raw parser output and integrates it into the dataset in one
// pass, returning the combined run summary.
func Run(raws []model.RawRecord, asmOpts AssembleOptions, mergeOpts IntegrateOptions) (*model.RunSummary, error) {
	records, stats := Assemble(raws, asmOpts)

	merge, err := Integrate(records, mergeOpts)
	if err != nil {
		return nil, err
	}

	return &model.RunSummary{
		RowsIn:         stats.RowsIn,
		RowsSkipped:    stats.RowsSkipped,
		UnknownUnits:   stats.UnknownUnits,
		UnmappedLabels: stats.UnmappedLabels,
		RowsRemoved:    merge.RowsRemoved,
		RowsAdded:      merge.RowsAdded,
		DatasetSize:    merge.DatasetSize,
	}, nil
}
