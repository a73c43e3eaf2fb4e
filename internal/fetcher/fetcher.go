// Package fetcher downloads report files and reads the Excel workbooks
// state agencies publish.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote report files.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path.
	// Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}
