package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/sankhaXjack/JOB-RECOMANDATION/internal/app"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/config"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

type recommendOptions struct {
	jobs       string
	candidates string
	candidate  string
	clusters   int
	asJSON     bool
}

func newRecommendCmd() *cobra.Command {
	var opts recommendOptions
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Cluster a jobs CSV once and recommend jobs for one candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return recommend(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.jobs, "jobs", "", "jobs CSV file")
	cmd.Flags().StringVar(&opts.candidates, "candidates", "", "candidates CSV file")
	cmd.Flags().StringVar(&opts.candidate, "candidate", "", "candidate id to recommend for")
	cmd.Flags().IntVar(&opts.clusters, "clusters", 0, "number of clusters (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the recommendation as JSON")
	_ = cmd.MarkFlagRequired("jobs")
	_ = cmd.MarkFlagRequired("candidates")
	_ = cmd.MarkFlagRequired("candidate")
	return cmd
}

func recommend(ctx context.Context, out io.Writer, opts recommendOptions) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	pcfg := cfg.Pipeline()
	if opts.clusters > 0 {
		pcfg.K = opts.clusters
	}

	svc := app.New(
		app.WithLogger(logger.Nop()),
		app.WithPipelineConfig(pcfg),
		app.WithRecommendationLimit(cfg.RecommendationLimit),
	)
	if err := importFile(ctx, opts.jobs, svc.ImportJobs); err != nil {
		return err
	}
	if err := importFile(ctx, opts.candidates, svc.ImportCandidates); err != nil {
		return err
	}
	if _, err := svc.Rebuild(ctx); err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	rec, err := svc.RecommendForCandidate(ctx, opts.candidate)
	if err != nil {
		return fmt.Errorf("candidate %s: %w", opts.candidate, err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	return printRecommendation(out, rec)
}

func importFile(ctx context.Context, path string, read func(context.Context, io.Reader) (int, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := read(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func printRecommendation(out io.Writer, rec types.Recommendation) error { //nolint:gocritic // hugeParam: printed once
	fmt.Fprintf(out, "Candidate %s with %g years of experience belongs to cluster %d\n",
		rec.CandidateID, rec.Experience, rec.ClusterID)
	for _, s := range rec.Scores {
		fmt.Fprintf(out, "  cluster %d log-density %.4f\n", s.ClusterID, s.LogDensity)
	}
	fmt.Fprintf(out, "\nRecommended jobs (%d):\n", len(rec.Jobs))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tLOCATION\tTYPE\tYEARS\tSKILLS")
	for _, j := range rec.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\n", j.ID, j.Location, j.JobType, j.YearsOfExperience, strings.Join(j.Skills, ";"))
	}
	return tw.Flush()
}
