package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active rule set",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("rules", "", "rule file path (default: embedded rules)")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")

	store, err := rules.Load(rulesOrConfig(rulesPath))
	if err != nil {
		return err
	}

	cmd.Printf("Rule set version %s\n\n", store.Version())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROGRAM\tMIN INVESTMENT\tTRF CEILING\tRATE CEILING\tEXCLUDED SECTORS")
	for _, key := range store.Programs() {
		pr, _ := store.Program(model.Program(key))
		fmt.Fprintf(w, "%s\t%.0f EUR\t%.1f%%\t%.0f%%\t%s\n",
			key, pr.MinInvestment, pr.MaxTRFPercent,
			pr.Funding.MaxRatePercent, strings.Join(pr.ExcludedSectors, ","))
	}
	return w.Flush()
}
