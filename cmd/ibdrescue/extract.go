package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/wilhasse/go-ibdrescue/rescue"
	"github.com/wilhasse/go-ibdrescue/scan"
)

// extractConfig mirrors the extract flags so runs can be described in a
// YAML file; explicit flags win over file values.
type extractConfig struct {
	Mode      string `yaml:"mode"`
	Output    string `yaml:"output"`
	PageSize  int    `yaml:"page_size"`
	Workers   int    `yaml:"workers"`
	ChunkSize int64  `yaml:"chunk_size"`
}

func loadConfig(path string) (extractConfig, error) {
	var cfg extractConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func newExtractCmd() *cobra.Command {
	var (
		cfgPath      string
		modeName     string
		byTablespace bool
		output       string
		pageSize     int
		workers      int
		chunkSize    int64
		dryRun       bool
		budget       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "extract <file-or-device>",
		Short: "Scan input and write validated pages grouped by index or tablespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				cfg, err := loadConfig(cfgPath)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("mode") && cfg.Mode != "" {
					modeName = cfg.Mode
				}
				if !cmd.Flags().Changed("output") && cfg.Output != "" {
					output = cfg.Output
				}
				if !cmd.Flags().Changed("page-size") && cfg.PageSize != 0 {
					pageSize = cfg.PageSize
				}
				if !cmd.Flags().Changed("workers") && cfg.Workers != 0 {
					workers = cfg.Workers
				}
				if !cmd.Flags().Changed("chunk-size") && cfg.ChunkSize != 0 {
					chunkSize = cfg.ChunkSize
				}
			}
			if byTablespace {
				modeName = "tablespace"
			}
			mode, err := rescue.ParseMode(modeName)
			if err != nil {
				return err
			}

			f, size, err := openInput(args[0])
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer f.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if budget > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, budget)
				defer cancel()
			}

			var lastPct int64 = -5
			stats, err := rescue.Run(ctx, f, size, rescue.Options{
				Mode:      mode,
				OutputDir: output,
				PageSize:  pageSize,
				Workers:   workers,
				ChunkSize: chunkSize,
				DryRun:    dryRun,
				Log:       log,
				Progress: func(p rescue.Progress) {
					if p.TotalBytes == 0 {
						return
					}
					pct := p.BytesScanned * 100 / p.TotalBytes
					if pct/5 != lastPct/5 {
						lastPct = pct
						log.WithFields(logrus.Fields{
							"scanned":   p.BytesScanned,
							"total":     p.TotalBytes,
							"validated": p.Validated,
							"rejected":  p.Rejected,
						}).Infof("%d%% scanned", pct)
					}
				},
			})
			if err != nil {
				if errors.Is(err, scan.ErrUnknownPageSize) {
					return errors.Wrap(err, "try --page-size")
				}
				return err
			}

			reportStats(stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML config file (flags take precedence)")
	cmd.Flags().StringVar(&modeName, "mode", "index", "extraction mode: index or tablespace")
	cmd.Flags().BoolVar(&byTablespace, "by-tablespace", false, "shorthand for --mode tablespace")
	cmd.Flags().StringVarP(&output, "output", "o", "output", "output directory")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size override (skip probing)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent scan workers (0 = one per CPU)")
	cmd.Flags().Int64Var(&chunkSize, "chunk-size", 0, "scan chunk size in bytes")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "classify and count without writing files")
	cmd.Flags().DurationVar(&budget, "budget", 0, "wall-clock budget for the whole run")
	return cmd
}

func reportStats(stats *rescue.Stats) {
	fields := logrus.Fields{
		"page_size":  stats.PageSize,
		"candidates": stats.Candidates,
		"validated":  stats.Validated,
		"rejected":   stats.RejectedTotal(),
		"keys":       len(stats.PerKey),
	}
	if stats.BytesUnreadable > 0 {
		fields["bytes_unreadable"] = stats.BytesUnreadable
	}
	if stats.OffsetMismatches > 0 {
		fields["offset_mismatches"] = stats.OffsetMismatches
	}
	log.WithFields(fields).Info("scan complete")

	for reason, n := range stats.Rejected {
		log.WithField("count", n).Debugf("rejected: %s", reason)
	}
	for key, err := range stats.KeyErrors {
		log.WithError(err).Warnf("output stream for key %d failed", key)
	}
	if stats.Cancelled {
		log.Warn("run cancelled; results are partial")
	}
}
