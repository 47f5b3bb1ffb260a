// Package narrative renders a ComplianceResult into prose for application
// dossiers using Claude. The narrative is presentation only; nothing it
// produces feeds back into the deterministic validation.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/pkg/anthropic"
)

const systemPrompt = `You are a funding-application consultant for Portuguese SMEs.
You receive the structured result of a compliance validation against an EU/PT funding program.
Write a concise narrative summary (2-4 paragraphs, professional register, no markdown headings) covering:
- whether the application is eligible and why,
- the most important issues to resolve, in priority order,
- the supportable funding rate and amount.
Do not invent figures; use only the data provided.`

// Generator produces narrative summaries, rate-limited so report batches
// stay inside the API quota.
type Generator struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
}

// New creates a Generator. requestsPerMinute bounds the call rate; values
// below 1 disable limiting.
func New(client anthropic.Client, modelID string, requestsPerMinute int) *Generator {
	var limiter *rate.Limiter
	if requestsPerMinute >= 1 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), 1)
	}
	return &Generator{client: client, model: modelID, limiter: limiter}
}

// Generate writes the narrative for one validation result.
func (g *Generator) Generate(ctx context.Context, result *model.ComplianceResult) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "narrative: rate limit wait")
		}
	}

	temp := 0.2
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   1024,
		System:      systemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: buildPrompt(result)}},
		Temperature: &temp,
	})
	if err != nil {
		return "", eris.Wrap(err, "narrative: generate")
	}

	text := resp.Text()
	if text == "" {
		return "", eris.New("narrative: empty model response")
	}

	zap.L().Debug("narrative: generated",
		zap.String("run_id", result.RunID),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	return text, nil
}

// buildPrompt flattens the result into a prompt the model can summarize.
func buildPrompt(result *model.ComplianceResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Program: %s\n", result.Program)
	fmt.Fprintf(&b, "Compliant: %t (critical failures: %d, warnings: %d)\n",
		result.IsCompliant, result.CriticalFailures, result.Warnings)
	fmt.Fprintf(&b, "Maximum funding rate: %.1f%%, maximum amount: %.2f EUR\n",
		result.MaxFundingRatePercent, result.MaxFundingAmount)
	fmt.Fprintf(&b, "Requested funding within maximum: %t\n", result.RequestedFundingValid)
	fmt.Fprintf(&b, "Rule set %s, engine %s\n\n", result.RuleSetVersion, result.EngineVersion)

	b.WriteString("Checks:\n")
	for _, c := range result.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, %s): expected %s, actual %s\n",
			status, c.ID, c.Name, c.Severity, c.Expected, c.Actual)
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, r := range result.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return b.String()
}
