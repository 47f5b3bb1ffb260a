package compliance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atlantico-advisors/funding-cli/internal/funding"
	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

// headroomTolerance is the fraction of eligible investment below which the
// gap between requested and maximum funding is not worth flagging.
const headroomTolerance = 0.01

// recommendations derives actionable guidance from the evaluated checks and
// the funding calculation. Failed-check guidance is built generically from
// each check's expected/actual values so it survives rule-set changes.
func recommendations(checks []model.ComplianceCheck, compliant bool, inv model.InvestmentInfo, fund funding.Result, fr rules.FundingRules) []string {
	var recs []string

	if compliant {
		recs = append(recs, fmt.Sprintf(
			"The application meets all eligibility criteria and supports funding of up to %s (%.0f%% of eligible investment).",
			eur(fund.MaxAmount.InexactFloat64()), fund.RatePercent))
	}

	for _, c := range checks {
		if c.Passed || c.Severity != model.SeverityCritical {
			continue
		}
		recs = append(recs, fmt.Sprintf(
			"Resolve %q before submission: the program requires %s, but the application shows %s.",
			c.Name, c.Expected, c.Actual))
	}

	// Funding headroom: the applicant could ask for more.
	if fund.RequestedValid && inv.Eligible > 0 {
		headroom := fund.MaxAmount.Sub(decimal.NewFromFloat(inv.FundingRequested))
		tolerance := decimal.NewFromFloat(inv.Eligible * headroomTolerance)
		if headroom.GreaterThan(tolerance) {
			recs = append(recs, fmt.Sprintf(
				"The requested funding of %s is %s below the supportable maximum; consider requesting up to %s.",
				eur(inv.FundingRequested), eur(headroom.InexactFloat64()), eur(fund.MaxAmount.InexactFloat64())))
		}
	}

	// Bonus-tier nudges, distinct from any hard gate.
	if fr.GreenBonus > 0 && fr.GreenBonusThreshold > 0 &&
		inv.GreenPercent > 0 && inv.GreenPercent < fr.GreenBonusThreshold {
		recs = append(recs, fmt.Sprintf(
			"Raising the green investment share from %.0f%% to %.0f%% would add a %.0f pp funding-rate bonus.",
			inv.GreenPercent, fr.GreenBonusThreshold, fr.GreenBonus))
	}
	if fr.DigitalBonus > 0 && fr.DigitalBonusThreshold > 0 &&
		inv.DigitalPercent > 0 && inv.DigitalPercent < fr.DigitalBonusThreshold {
		recs = append(recs, fmt.Sprintf(
			"Raising the digital investment share from %.0f%% to %.0f%% would add a %.0f pp funding-rate bonus.",
			inv.DigitalPercent, fr.DigitalBonusThreshold, fr.DigitalBonus))
	}

	return recs
}
