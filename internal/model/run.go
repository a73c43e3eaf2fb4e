package model

import "time"

// RunSummary reports what one integration run did. Per-row anomalies are
// counted here rather than surfaced as errors.
type RunSummary struct {
	RowsIn         int `json:"rows_in"`
	RowsSkipped    int `json:"rows_skipped"`
	UnknownUnits   int `json:"unknown_units"`
	UnmappedLabels int `json:"unmapped_labels"`
	RowsRemoved    int `json:"rows_removed"`
	RowsAdded      int `json:"rows_added"`
	DatasetSize    int `json:"dataset_size"`
}

// Run records one integration run in the catalog.
type Run struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Strategy  ReplaceStrategy `json:"strategy"`
	Years     *YearRange      `json:"years,omitempty"`
	Summary   RunSummary      `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
}
