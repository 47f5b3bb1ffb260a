package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/finance"
)

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Compute VALF (NPV) and TRF (IRR) from yearly cash flows",
	Long: `Compute the viability metrics an application declares, from yearly
cash flows discounted at the program reference rate.

Example:
  funding-cli finance --flows=-500000,120000,150000,150000,140000 --rate 4`,
	RunE: runFinance,
}

func init() {
	f := financeCmd.Flags()
	f.String("flows", "", "comma-separated yearly cash flows, year zero first (required)")
	f.Float64("rate", 4.0, "discount rate in percent")
	_ = financeCmd.MarkFlagRequired("flows")

	rootCmd.AddCommand(financeCmd)
}

func runFinance(cmd *cobra.Command, _ []string) error {
	flowsArg, _ := cmd.Flags().GetString("flows")
	ratePct, _ := cmd.Flags().GetFloat64("rate")

	flows, err := parseFlows(flowsArg)
	if err != nil {
		return err
	}

	valf, trf, err := finance.Metrics(flows, ratePct)
	if err != nil {
		return err
	}

	cmd.Printf("VALF at %.2f%%: %.2f EUR\n", ratePct, valf)
	cmd.Printf("TRF: %.4f%%\n", trf)
	return nil
}

func parseFlows(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	flows := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "finance: invalid cash flow %q", p)
		}
		flows = append(flows, v)
	}
	return flows, nil
}
