package main

import (
	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/compliance"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show engine and rule set versions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := rules.Load(cfg.Rules.Path)
		if err != nil {
			return err
		}
		cmd.Printf("engine %s, rule set %s\n", compliance.EngineVersion, store.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
