// Package funding computes the maximum allowable funding rate and amount
// for an application: a base rate tiered by company size plus additive,
// independently-gated bonuses, capped at the program ceiling.
package funding

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

// Component names one contribution to the final rate, for reporting.
type Component struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Result is the outcome of a funding-rate calculation.
type Result struct {
	RatePercent    float64         `json:"rate_percent"`
	MaxAmount      decimal.Decimal `json:"max_amount"` // EUR, rounded half-up to cents
	Breakdown      []Component     `json:"breakdown"`
	RequestedValid bool            `json:"requested_valid"`
}

// Calculate derives the maximum funding rate and amount for one application.
// Pure: no clock and no randomness, so identical inputs yield identical results.
func Calculate(company model.CompanyInfo, inv model.InvestmentInfo, fr rules.FundingRules) Result {
	rate := fr.BaseRateBySize[company.Size]
	breakdown := []Component{{Name: "base_rate", Percent: rate}}

	if fr.RegionalBonus > 0 && InPriorityRegion(company.Region, fr.PriorityRegions) {
		rate += fr.RegionalBonus
		breakdown = append(breakdown, Component{Name: "regional_bonus", Percent: fr.RegionalBonus})
	}

	if fr.InnovationBonus > 0 && fr.MinRDShare > 0 && inv.RDShare() >= fr.MinRDShare {
		rate += fr.InnovationBonus
		breakdown = append(breakdown, Component{Name: "innovation_bonus", Percent: fr.InnovationBonus})
	}

	if fr.GreenBonus > 0 && fr.GreenBonusThreshold > 0 && inv.GreenPercent >= fr.GreenBonusThreshold {
		rate += fr.GreenBonus
		breakdown = append(breakdown, Component{Name: "green_bonus", Percent: fr.GreenBonus})
	}

	if fr.DigitalBonus > 0 && fr.DigitalBonusThreshold > 0 && inv.DigitalPercent >= fr.DigitalBonusThreshold {
		rate += fr.DigitalBonus
		breakdown = append(breakdown, Component{Name: "digital_bonus", Percent: fr.DigitalBonus})
	}

	if fr.MaxRatePercent > 0 && rate > fr.MaxRatePercent {
		breakdown = append(breakdown, Component{Name: "program_ceiling", Percent: fr.MaxRatePercent - rate})
		rate = fr.MaxRatePercent
	}

	// max amount = rate x eligible investment, half-up to the cent.
	maxAmount := decimal.NewFromFloat(inv.Eligible).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	requested := decimal.NewFromFloat(inv.FundingRequested)

	result := Result{
		RatePercent:    rate,
		MaxAmount:      maxAmount,
		Breakdown:      breakdown,
		RequestedValid: requested.LessThanOrEqual(maxAmount),
	}

	zap.L().Debug("funding: rate calculated",
		zap.String("size", string(company.Size)),
		zap.String("region", company.Region),
		zap.Float64("rate_percent", rate),
		zap.String("max_amount", maxAmount.String()),
		zap.Bool("requested_valid", result.RequestedValid),
	)

	return result
}

// InPriorityRegion checks region membership case-insensitively.
func InPriorityRegion(region string, priority []string) bool {
	r := strings.ToLower(strings.TrimSpace(region))
	if r == "" {
		return false
	}
	for _, p := range priority {
		if r == strings.ToLower(p) {
			return true
		}
	}
	return false
}
