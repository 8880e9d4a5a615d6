package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/loadtest"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

func newLoadTestCmd() *cobra.Command {
	cfg := loadtest.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Send synthetic candidates to a running service and verify the answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			stats, err := loadtest.Run(cmd.Context(), cfg, logger.Get())
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "matched %d, verified %d, mismatches %d, rejected batches %d in %s\n",
					stats.Matched, stats.Verified, stats.Mismatches, stats.BatchesRejected, stats.Duration)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "service base URL")
	cmd.Flags().IntVar(&cfg.Candidates, "candidates", cfg.Candidates, "number of candidates")
	cmd.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "candidates per batch request")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent senders")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "candidate generator seed")
	return cmd
}
