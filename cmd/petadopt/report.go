package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"pet-adoption/internal/adapters/export/s3report"
	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/reports"
	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/router"

	"github.com/spf13/cobra"
)

type reportOptions struct {
	remote string
	upload bool
}

func reportCmd(configPath *string) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the catalogue report as JSON",
		Long: `Builds the report from the configured storage, or from a running
instance when --remote is given. With --upload the document is also
written to the configured S3 bucket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.remote, "remote", "", "Base URL of a running instance (e.g. http://localhost:8080)")
	cmd.Flags().BoolVar(&opts.upload, "upload", false, "Upload the report to S3 (REPORT_S3_* settings)")
	return cmd
}

func runReport(ctx context.Context, cfg *config.Config, opts reportOptions, out io.Writer) error {
	log := logger.FromConfig(cfg.Log)

	var (
		doc reports.Document
		err error
	)
	if opts.remote != "" {
		doc, err = remoteReport(ctx, opts.remote)
	} else {
		doc, err = localReport(ctx, cfg)
	}
	if err != nil {
		return err
	}

	if opts.upload {
		up, err := s3report.New(ctx, s3report.FromConfig(cfg.Export))
		if err != nil {
			return fmt.Errorf("s3 export: %w", err)
		}
		key, err := up.Upload(ctx, doc)
		if err != nil {
			return err
		}
		log.Info("report uploaded", logger.Fields{"bucket": cfg.Export.S3Bucket, "key": key})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func remoteReport(ctx context.Context, baseURL string) (reports.Document, error) {
	c, err := httpclient.New(baseURL, 0)
	if err != nil {
		return reports.Document{}, err
	}
	var doc reports.Document
	if err := c.GetJSON(ctx, "/reports", &doc); err != nil {
		return reports.Document{}, err
	}
	return doc, nil
}

func localReport(ctx context.Context, cfg *config.Config) (reports.Document, error) {
	repos, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return reports.Document{}, fmt.Errorf("open storage: %w", err)
	}
	defer repos.Close()

	svcs := router.NewServices(repos)
	if cfg.SeedSampleData {
		if _, err := svcs.Pets.Seed(ctx); err != nil {
			return reports.Document{}, fmt.Errorf("seed sample data: %w", err)
		}
	}
	return svcs.Reports.Document(ctx)
}
