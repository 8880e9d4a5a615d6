package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/config"
)

const app = "jobrec"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          app,
		Short:        "jobrec clusters a job catalog and recommends jobs by years of experience",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if cfgFile != "" {
				return os.Setenv(config.EnvFile, cfgFile)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (overrides $"+config.EnvFile+")")

	root.AddCommand(
		newServeCmd(),
		newRecommendCmd(),
		newGenerateCmd(),
		newLoadTestCmd(),
		newVersionCmd(),
	)
	return root
}
