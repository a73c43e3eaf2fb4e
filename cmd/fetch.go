package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/forest-rents/stumpage-cli/internal/fetcher"
	"github.com/forest-rents/stumpage-cli/internal/source"
)

var (
	fetchSource string
	fetchAll    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a source's report files into its raw directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		registry := newRegistry()

		var sources []source.Source
		if fetchAll {
			sources = registry.All()
		} else {
			src, err := registry.Get(fetchSource)
			if err != nil {
				return err
			}
			sources = []source.Source{src}
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    cfg.Fetch.UserAgent,
			Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries:   cfg.Fetch.MaxRetries,
			RateLimiters: fetcher.DefaultRateLimiters(),
		})

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Fetch.Concurrency)

		for _, src := range sources {
			dir := cfg.Data.SourceRawDir(src.Code())
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return eris.Wrapf(err, "create raw dir %s", dir)
			}

			for _, report := range src.Manifest() {
				g.Go(func() error {
					path := filepath.Join(dir, report.Filename)
					n, err := f.DownloadToFile(gctx, report.URL, path)
					if err != nil {
						return eris.Wrapf(err, "fetch %s", report.URL)
					}
					zap.L().Info("downloaded report",
						zap.String("source", src.Code()),
						zap.String("file", report.Filename),
						zap.Int64("bytes", n),
					)
					return nil
				})
			}
		}

		return g.Wait()
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSource, "source", "", "source code, e.g. LA")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every registered source")
	fetchCmd.MarkFlagsOneRequired("source", "all")
	rootCmd.AddCommand(fetchCmd)
}
