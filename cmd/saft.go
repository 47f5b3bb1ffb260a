package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/saft"
)

var saftCmd = &cobra.Command{
	Use:   "saft",
	Short: "SAF-T (PT) accounting data extraction",
}

var saftParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract financial aggregates from a SAF-T export",
	Long: `Parse a SAF-T (PT) XML export and compute the turnover and
balance-sheet aggregates the compliance engine consumes.

Example:
  funding-cli saft parse -f saft-2025.xml`,
	RunE: runSaftParse,
}

func init() {
	saftParseCmd.Flags().StringP("file", "f", "", "SAF-T XML file (required)")
	_ = saftParseCmd.MarkFlagRequired("file")

	saftCmd.AddCommand(saftParseCmd)
	rootCmd.AddCommand(saftCmd)
}

func runSaftParse(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "saft: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	fin, err := saft.Parse(f)
	if err != nil {
		return err
	}

	return printJSON(cmd, fin)
}
