package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/merit"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

var meritCmd = &cobra.Command{
	Use:   "merit",
	Short: "Score a project against the merit formula",
	Long: `Score an application's project on the 0-100 merit scale used to
rank applications within a call.

Example:
  funding-cli merit -f application.json --weights weights.yaml`,
	RunE: runMerit,
}

func init() {
	f := meritCmd.Flags()
	f.StringP("file", "f", "", "application JSON file (required)")
	f.String("rules", "", "rule file path (default: embedded rules)")
	f.String("weights", "", "merit weights YAML (default: built-in weights)")
	_ = meritCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(meritCmd)
}

func runMerit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	rulesPath, _ := cmd.Flags().GetString("rules")
	weightsPath, _ := cmd.Flags().GetString("weights")
	if weightsPath == "" {
		weightsPath = cfg.Merit.WeightsPath
	}

	input, err := loadInput(path)
	if err != nil {
		return err
	}

	store, err := rules.Load(rulesOrConfig(rulesPath))
	if err != nil {
		return err
	}
	pr, ok := store.Program(input.Program)
	if !ok {
		return eris.Errorf("merit: program %q not present in rule set %s", input.Program, store.Version())
	}

	weights := merit.DefaultWeights()
	if weightsPath != "" {
		weights, err = merit.LoadWeights(weightsPath)
		if err != nil {
			return err
		}
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	score := merit.ScoreProject(input, pr.Funding, weights)

	cmd.Printf("Merit score: %.2f / 100\n", score.Total)
	for _, name := range score.ComponentNames() {
		cmd.Printf("  %-18s %6.2f\n", name, score.Components[name])
	}
	return nil
}
