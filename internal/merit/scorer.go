// Package merit scores projects against the weighted merit formula used to
// rank applications within a call: financial gap, innovation intensity,
// sustainability, job creation, and regional priority.
package merit

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/atlantico-advisors/funding-cli/internal/funding"
	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

// Score is a 0-100 merit score with its weighted component contributions.
type Score struct {
	Total      float64            `json:"total"`
	Components map[string]float64 `json:"components"`
}

// ScoreProject computes the merit score for one application. Each component
// is a 0-1 signal scaled by its weight; the total is the weighted sum on a
// 0-100 scale, rounded to two decimals.
func ScoreProject(in model.ComplianceInput, fr rules.FundingRules, w Weights) Score {
	components := map[string]float64{
		"financial_gap":     w.FinancialGap * financialGapSignal(in),
		"innovation":        w.Innovation * innovationSignal(in.Investment),
		"sustainability":    w.Sustainability * sustainabilitySignal(in.Project),
		"job_creation":      w.JobCreation * jobCreationSignal(in.Project),
		"regional_priority": w.RegionalPriority * regionalSignal(in.Company, fr),
	}

	total := 0.0
	for _, c := range components {
		total += c
	}
	total = math.Round(total*100) / 100

	zap.L().Debug("merit: project scored",
		zap.String("project", in.Project.Name),
		zap.Float64("total", total),
	)

	return Score{Total: total, Components: components}
}

// financialGapSignal rewards a deeper funding gap: the more negative VALF is
// relative to the eligible investment, the stronger the case for co-funding.
func financialGapSignal(in model.ComplianceInput) float64 {
	if in.Investment.Eligible <= 0 || in.Project.VALF >= 0 {
		return 0
	}
	return clamp01(-in.Project.VALF / in.Investment.Eligible)
}

// innovationSignal saturates at an R&D share of 25% of total investment.
func innovationSignal(inv model.InvestmentInfo) float64 {
	return clamp01(inv.RDShare() / 0.25)
}

// sustainabilitySignal reads the sustainability score (neutral 0.5 when
// unknown) with a small uplift for DNSH compliance.
func sustainabilitySignal(p model.ProjectInfo) float64 {
	signal := 0.5
	if p.SustainabilityScore != nil {
		signal = clamp01(*p.SustainabilityScore / 100)
	}
	if p.DNSHCompliant {
		signal += 0.1
	}
	return clamp01(signal)
}

// jobCreationSignal saturates at ten new jobs.
func jobCreationSignal(p model.ProjectInfo) float64 {
	return clamp01(float64(p.JobsCreated) / 10)
}

// regionalSignal favours priority regions; other regions keep a floor so
// location never zeroes a project out.
func regionalSignal(c model.CompanyInfo, fr rules.FundingRules) float64 {
	if funding.InPriorityRegion(c.Region, fr.PriorityRegions) {
		return 1
	}
	return 0.3
}

// ComponentNames returns the component keys in sorted order, for stable
// report output.
func (s Score) ComponentNames() []string {
	names := make([]string, 0, len(s.Components))
	for name := range s.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
