package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atlantico-advisors/funding-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "funding-cli",
	Short: "Compliance validation for PT2030/PRR/SITCE funding applications",
	Long:  "Validates SME funding applications against versioned program rules, computes the maximum funding rate, extracts SAF-T financials, and scores project merit.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
