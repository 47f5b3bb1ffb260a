package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atlantico-advisors/funding-cli/internal/compliance"
	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate many applications concurrently",
	Long: `Validate a JSON array of applications against one shared evaluator.

Validations run in parallel; the rule store is immutable after load, so no
synchronization is needed. Results are printed as a JSON array in input order.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringP("file", "f", "", "JSON file containing an array of applications (required)")
	f.String("rules", "", "rule file path (default: embedded rules)")
	f.Int("concurrency", 0, "maximum parallel validations (default: config batch.max_concurrent)")
	_ = batchCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	rulesPath, _ := cmd.Flags().GetString("rules")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrent
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "batch: read %s", path)
	}
	var inputs []model.ComplianceInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return eris.Wrapf(err, "batch: parse %s", path)
	}
	if len(inputs) == 0 {
		return eris.New("batch: no applications in file")
	}

	store, err := rules.Load(rulesOrConfig(rulesPath))
	if err != nil {
		return err
	}
	evaluator := compliance.New(store)

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("batch validation starting",
		zap.Int("applications", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]*model.ComplianceResult, len(inputs))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			result, err := evaluator.Validate(in)
			if err != nil {
				return eris.Wrapf(err, "batch: application %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	compliant := 0
	for _, r := range results {
		if r.IsCompliant {
			compliant++
		}
	}
	log.Info("batch validation complete",
		zap.Int("applications", len(results)),
		zap.Int("compliant", compliant),
	)

	return printJSON(cmd, results)
}
