// Package compliance implements the rules-driven validation engine for
// PT2030/PRR/SITCE funding applications: an ordered battery of eligibility
// checks, a funding-rate calculation, recommendation generation, and a
// confidence score, assembled into one immutable result per call.
package compliance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/atlantico-advisors/funding-cli/internal/funding"
	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

// EngineVersion is stamped into every result for audit traceability.
const EngineVersion = "1.0.0"

// Evaluator runs the check battery against applications. It holds only the
// immutable rule store, so a single instance is safe for concurrent use;
// refreshing rules means constructing a new Evaluator.
type Evaluator struct {
	store *rules.Store
}

// New creates an Evaluator over a loaded rule store.
func New(store *rules.Store) *Evaluator {
	return &Evaluator{store: store}
}

// Validate evaluates one application and returns the full structured result.
// A non-compliant application is a normal, reported outcome; the only error
// condition is a program key missing from the rule set.
func (e *Evaluator) Validate(in model.ComplianceInput) (*model.ComplianceResult, error) {
	pr, ok := e.store.Program(in.Program)
	if !ok {
		return nil, eris.Wrapf(rules.ErrConfigurationInvalid,
			"compliance: program %q not present in rule set %s", in.Program, e.store.Version())
	}

	checks := make([]model.ComplianceCheck, 0, len(battery)+1)
	for _, c := range battery {
		if c.applicable != nil && !c.applicable(in.Program, pr) {
			continue
		}
		out := c.eval(in, pr)
		checks = append(checks, buildCheck(c, out))
	}

	fund := funding.Calculate(in.Company, in.Investment, pr.Funding)
	checks = append(checks, fundingCheck(in.Investment, fund))

	criticalFailures, warnings := 0, 0
	for _, c := range checks {
		if c.Passed {
			continue
		}
		switch c.Severity {
		case model.SeverityCritical:
			criticalFailures++
		case model.SeverityWarning:
			warnings++
		}
	}
	compliant := criticalFailures == 0

	result := &model.ComplianceResult{
		IsCompliant:           compliant,
		Program:               in.Program,
		Checks:                checks,
		CriticalFailures:      criticalFailures,
		Warnings:              warnings,
		Recommendations:       recommendations(checks, compliant, in.Investment, fund, pr.Funding),
		Confidence:            Confidence(in),
		MaxFundingRatePercent: fund.RatePercent,
		MaxFundingAmount:      fund.MaxAmount.InexactFloat64(),
		RequestedFundingValid: fund.RequestedValid,
		ValidatedAt:           time.Now().UTC(),
		RuleSetVersion:        e.store.Version(),
		EngineVersion:         EngineVersion,
		RunID:                 uuid.NewString(),
	}

	zap.L().Info("compliance: validation complete",
		zap.String("run_id", result.RunID),
		zap.String("program", string(in.Program)),
		zap.Bool("compliant", result.IsCompliant),
		zap.Int("checks", len(result.Checks)),
		zap.Int("critical_failures", result.CriticalFailures),
		zap.Int("warnings", result.Warnings),
		zap.Float64("max_rate_percent", result.MaxFundingRatePercent),
	)

	return result, nil
}

// RuleSetVersion exposes the version of the store backing this evaluator.
func (e *Evaluator) RuleSetVersion() string {
	return e.store.Version()
}

func buildCheck(c check, out outcome) model.ComplianceCheck {
	msg := out.message
	if msg == "" {
		if out.passed {
			msg = fmt.Sprintf("%s: requirement met", c.name)
		} else {
			msg = fmt.Sprintf("%s: expected %s, got %s", c.name, out.expected, out.actual)
		}
	}
	return model.ComplianceCheck{
		ID:        c.id,
		Name:      c.name,
		Severity:  c.severity,
		Passed:    out.passed,
		Expected:  out.expected,
		Actual:    out.actual,
		Message:   msg,
		Reference: c.reference,
	}
}

// fundingCheck validates the requested amount against the computed maximum.
// It runs last because it depends on the funding calculation rather than on
// the input alone.
func fundingCheck(inv model.InvestmentInfo, fund funding.Result) model.ComplianceCheck {
	expected := "funding requested not above the maximum of " + eur(fund.MaxAmount.InexactFloat64())
	actual := "funding requested of " + eur(inv.FundingRequested)

	msg := "Maximum funding amount: requirement met"
	if !fund.RequestedValid {
		msg = fmt.Sprintf("Maximum funding amount: expected %s, got %s", expected, actual)
	}

	return model.ComplianceCheck{
		ID:       "FUND_001",
		Name:     "Maximum funding amount",
		Severity: model.SeverityCritical,
		Passed:   fund.RequestedValid,
		Expected: expected,
		Actual:   actual,
		Message:  msg,
	}
}
