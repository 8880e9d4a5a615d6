package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/catalog"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/synth"
)

func newGenerateCmd() *cobra.Command {
	def := synth.DefaultConfig()
	var (
		jobsPath, candidatesPath string
		cfg                      = def
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic job catalog and candidate list as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := synth.New(cfg)
			if err := writeFile(jobsPath, func(w io.Writer) error { return catalog.WriteJobs(w, gen.Jobs()) }); err != nil {
				return err
			}
			if err := writeFile(candidatesPath, func(w io.Writer) error { return catalog.WriteCandidates(w, gen.Candidates()) }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d jobs to %s and %d candidates to %s\n",
				cfg.Jobs, jobsPath, cfg.Candidates, candidatesPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobsPath, "jobs", "jobs.csv", "output jobs CSV")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "candidates.csv", "output candidates CSV")
	cmd.Flags().IntVar(&cfg.Jobs, "job-count", def.Jobs, "number of jobs")
	cmd.Flags().IntVar(&cfg.Candidates, "candidate-count", def.Candidates, "number of candidates")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", def.Seed, "random seed")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
