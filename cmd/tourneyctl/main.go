/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mikeb26/enginetourney/archive"
	"github.com/mikeb26/enginetourney/internal"
	"github.com/mikeb26/enginetourney/internal/metrics"
	"github.com/mikeb26/enginetourney/s3store"
	"github.com/mikeb26/enginetourney/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	ctx      context.Context
	cfg      internal.Config
	registry *prometheus.Registry
	metrics  *metrics.Service

	envFile     string
	logLevel    string
	metricsFile string
	concurrency int
}

func newApp(ctx context.Context) *app {
	registry := prometheus.NewRegistry()

	return &app{
		ctx:      ctx,
		registry: registry,
		metrics:  metrics.NewService(registry),
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tourneyctl",
		Short: "Manage engine tournament files and archives",
		Long: `tourneyctl creates, inspects and updates engine-vs-engine chess
tournament files, and moves them between the local disk, an S3 bucket and a
read-only http archive.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var envFiles []string
			if a.envFile != "" {
				envFiles = append(envFiles, a.envFile)
			}
			cfg, err := internal.LoadConfig(envFiles...)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel, err = log.ParseLevel(a.logLevel)
				if err != nil {
					return fmt.Errorf("invalid --log-level: %w", err)
				}
			}
			a.cfg = cfg
			log.SetLevel(cfg.LogLevel)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.metricsFile == "" {
				return nil
			}
			return prometheus.WriteToTextfile(a.metricsFile, a.registry)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env", "", "dotenv file to load (default .env)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides TOURNEY_LOG_LEVEL")
	flags.StringVar(&a.metricsFile, "metrics-textfile", "",
		"write Prometheus metrics to this file on exit")
	flags.IntVar(&a.concurrency, "concurrency", 1,
		"number of games the local game manager runs at once")

	rootCmd.AddCommand(
		newTypesCmd(a),
		newNewCmd(a),
		newShowCmd(a),
		newRecordCmd(a),
		newSummaryCmd(a),
		newListCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newFetchCmd(a),
	)

	return rootCmd
}

// gameManager is handed to every tournament the command creates or loads
func (a *app) gameManager() tournament.GameManager {
	return &tournament.LocalManager{MaxConcurrency: a.concurrency}
}

// s3Store returns an initialized store for the configured bucket.
func (a *app) s3Store() (*s3store.Store, error) {
	if a.cfg.S3Bucket == "" {
		return nil, fmt.Errorf("no bucket configured; set TOURNEY_S3_BUCKET")
	}
	store := s3store.New(a.ctx, a.cfg.S3Bucket, a.cfg.S3Prefix, a.cfg.S3Gzip, true)
	if a.cfg.S3Endpoint != "" {
		store.WithEndpoint(a.cfg.S3Endpoint, a.cfg.S3AccessKeyID,
			a.cfg.S3SecretAccessKey)
	}
	if err := store.Init(); err != nil {
		return nil, err
	}

	return store, nil
}

// writableArchive returns a FileStore backed archive when dir is set and the
// S3 archive otherwise.
func (a *app) writableArchive(dir string) (*archive.Archive, error) {
	if dir != "" {
		return archive.New(archive.NewFileStore(dir), "file", a.gameManager(),
			a.metrics), nil
	}
	store, err := a.s3Store()
	if err != nil {
		return nil, err
	}

	return archive.New(store, "s3", a.gameManager(), a.metrics), nil
}

// httpArchive reads from TOURNEY_HTTP_BASE_URL (or baseURL when set) through
// a cached client. The cache lives in the S3 bucket when one is reachable
// and in memory otherwise.
func (a *app) httpArchive(baseURL string) (*archive.Archive, error) {
	if baseURL == "" {
		baseURL = a.cfg.HTTPBaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("no archive url configured; set TOURNEY_HTTP_BASE_URL")
	}

	client := internal.NewCachedHttpClient(nil, a.cfg.CacheTTL)
	if a.cfg.S3Bucket != "" {
		store, err := a.s3Store()
		if err != nil {
			log.Warn("tourneyctl.fetch: failed to init S3 cache; falling back to memory",
				"error", err)
		} else {
			client = internal.NewCachedHttpClient(store, a.cfg.CacheTTL)
		}
	}

	return archive.New(archive.NewHTTPStore(baseURL, client), "http",
		a.gameManager(), a.metrics), nil
}

func main() {
	a := newApp(context.Background())
	if err := newRootCmd(a).ExecuteContext(a.ctx); err != nil {
		os.Exit(1)
	}
}
