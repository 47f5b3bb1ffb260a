package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/atlantico-advisors/funding-cli/internal/audit"
	"github.com/atlantico-advisors/funding-cli/internal/compliance"
	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/narrative"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
	"github.com/atlantico-advisors/funding-cli/pkg/anthropic"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate one funding application",
	Long: `Validate a funding application against the program rule set.

The application file is a JSON document with program, company, investment,
and project sections. A non-compliant application is a normal outcome and
exits 0; only configuration or input errors fail the command.

Examples:
  # Validate against the embedded rules
  funding-cli validate -f application.json

  # Validate against an external rule file, JSON output
  funding-cli validate -f application.json --rules rules.json --format json

  # Append the audit record and a generated narrative
  funding-cli validate -f application.json --audit --narrative`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringP("file", "f", "", "application JSON file (required)")
	f.String("rules", "", "rule file path (default: embedded rules)")
	f.String("program", "", "override the application's program (PT2030, PRR, SITCE)")
	f.String("format", "table", "output format: table or json")
	f.Bool("audit", false, "print the audit record (input/output hashes)")
	f.Bool("narrative", false, "generate a narrative summary via Claude")
	_ = validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("file")
	rulesPath, _ := cmd.Flags().GetString("rules")
	programOverride, _ := cmd.Flags().GetString("program")
	format, _ := cmd.Flags().GetString("format")
	withAudit, _ := cmd.Flags().GetBool("audit")
	withNarrative, _ := cmd.Flags().GetBool("narrative")

	if format != "table" && format != "json" {
		return eris.Errorf("validate: --format must be table or json (got %q)", format)
	}

	input, err := loadInput(path)
	if err != nil {
		return err
	}
	if programOverride != "" {
		input.Program = model.Program(programOverride)
	}

	store, err := rules.Load(rulesOrConfig(rulesPath))
	if err != nil {
		return err
	}

	evaluator := compliance.New(store)
	result, err := evaluator.Validate(input)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		if err := printJSON(cmd, result); err != nil {
			return err
		}
	default:
		printResultTable(cmd, result)
	}

	if withAudit {
		record, err := audit.NewRecord(input, result)
		if err != nil {
			return err
		}
		cmd.Println()
		if err := printJSON(cmd, record); err != nil {
			return err
		}
	}

	if withNarrative {
		if cfg.Anthropic.Key == "" {
			return eris.New("validate: --narrative requires anthropic.key in config")
		}
		gen := narrative.New(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.RequestsPerMinute)
		text, err := gen.Generate(ctx, result)
		if err != nil {
			return err
		}
		cmd.Println()
		cmd.Println(text)
	}

	return nil
}

// loadInput reads and decodes an application JSON file.
func loadInput(path string) (model.ComplianceInput, error) {
	var input model.ComplianceInput

	data, err := os.ReadFile(path)
	if err != nil {
		return input, eris.Wrapf(err, "validate: read application %s", path)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, eris.Wrapf(err, "validate: parse application %s", path)
	}
	return input, nil
}

// rulesOrConfig prefers the CLI flag over the configured rule path.
func rulesOrConfig(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return cfg.Rules.Path
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "validate: marshal output")
	}
	cmd.Println(string(data))
	return nil
}

func printResultTable(cmd *cobra.Command, result *model.ComplianceResult) {
	status := "NOT COMPLIANT"
	if result.IsCompliant {
		status = "COMPLIANT"
	}

	cmd.Printf("Program %s: %s (rule set %s, engine %s)\n",
		result.Program, status, result.RuleSetVersion, result.EngineVersion)
	cmd.Printf("Max funding rate %.1f%%, max amount %.2f EUR, requested within maximum: %t\n",
		result.MaxFundingRatePercent, result.MaxFundingAmount, result.RequestedFundingValid)
	cmd.Printf("Critical failures %d, warnings %d, confidence %.2f\n\n",
		result.CriticalFailures, result.Warnings, result.Confidence)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEVERITY\tSTATUS\tCHECK")
	for _, c := range result.Checks {
		st := "pass"
		if !c.Passed {
			st = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Severity, st, c.Name)
	}
	_ = w.Flush()

	if len(result.Recommendations) > 0 {
		cmd.Println("\nRecommendations:")
		for _, r := range result.Recommendations {
			cmd.Printf("  - %s\n", r)
		}
	}
}
