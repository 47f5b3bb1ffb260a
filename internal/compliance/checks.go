package compliance

import (
	"fmt"
	"strings"

	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

// outcome is the raw result of evaluating one check.
type outcome struct {
	passed   bool
	expected string
	actual   string
	message  string
}

// check is one rule in the battery: a stable id, a severity, an optional
// applicability predicate, and a pure evaluation function. Checks never see
// each other's outcomes.
type check struct {
	id         string
	name       string
	severity   model.Severity
	reference  string
	applicable func(p model.Program, pr rules.ProgramRules) bool
	eval       func(in model.ComplianceInput, pr rules.ProgramRules) outcome
}

// sizeThreshold holds the statutory caps for one EU SME size class.
// Employee count is always binding; turnover OR balance-sheet total may
// qualify (Recommendation 2003/361/EC, art. 2).
type sizeThreshold struct {
	maxEmployees int
	maxTurnover  float64
	maxBalance   float64
}

var sizeThresholds = map[model.CompanySize]sizeThreshold{
	model.SizeMicro:  {maxEmployees: 10, maxTurnover: 2_000_000, maxBalance: 2_000_000},
	model.SizeSmall:  {maxEmployees: 50, maxTurnover: 10_000_000, maxBalance: 10_000_000},
	model.SizeMedium: {maxEmployees: 250, maxTurnover: 50_000_000, maxBalance: 43_000_000},
}

// battery is the fixed, ordered list of checks. All applicable checks always
// execute; ordering is stable so results are addressable by position as well
// as by id.
var battery = []check{
	{
		id:        "FIN_001",
		name:      "Financial viability (VALF)",
		severity:  model.SeverityCritical,
		reference: "Portaria 111-A/2023, funding gap criterion",
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			v := in.Project.VALF
			return outcome{
				passed:   v < 0,
				expected: "VALF below " + eur(0),
				actual:   "VALF of " + eur(v),
				message:  viabilityMessage(v < 0, "a negative VALF demonstrates the funding gap required for public co-funding"),
			}
		},
	},
	{
		id:        "FIN_002",
		name:      "Rate of return ceiling (TRF)",
		severity:  model.SeverityCritical,
		reference: "Program discount-rate ceiling",
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			t := in.Project.TRF
			return outcome{
				passed:   t < pr.MaxTRFPercent,
				expected: fmt.Sprintf("TRF below %.1f%%", pr.MaxTRFPercent),
				actual:   fmt.Sprintf("TRF of %.1f%%", t),
				message:  viabilityMessage(t < pr.MaxTRFPercent, "a project returning above the reference rate does not justify public funding"),
			}
		},
	},
	{
		id:        "FIN_003",
		name:      "Minimum investment",
		severity:  model.SeverityCritical,
		reference: "Program minimum eligible investment",
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			e := in.Investment.Eligible
			return outcome{
				passed:   e >= pr.MinInvestment,
				expected: "eligible investment of at least " + eur(pr.MinInvestment),
				actual:   "eligible investment of " + eur(e),
			}
		},
	},
	{
		id:       "FIN_004",
		name:     "Eligible within total investment",
		severity: model.SeverityCritical,
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			return outcome{
				passed:   in.Investment.Eligible <= in.Investment.Total,
				expected: "eligible investment not above total investment " + eur(in.Investment.Total),
				actual:   "eligible investment of " + eur(in.Investment.Eligible),
			}
		},
	},
	{
		id:       "FIN_005",
		name:     "Requested within eligible investment",
		severity: model.SeverityCritical,
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			return outcome{
				passed:   in.Investment.FundingRequested <= in.Investment.Eligible,
				expected: "funding requested not above eligible investment " + eur(in.Investment.Eligible),
				actual:   "funding requested of " + eur(in.Investment.FundingRequested),
			}
		},
	},
	{
		id:        "COMP_001",
		name:      "Size classification consistency",
		severity:  model.SeverityCritical,
		reference: "Recommendation 2003/361/EC",
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			c := in.Company
			th, bounded := sizeThresholds[c.Size]
			if !bounded {
				// Large (or unknown) classes carry no upper bound.
				return outcome{
					passed:   c.Size == model.SizeLarge,
					expected: "a declared size class of micro, small, medium or large",
					actual:   fmt.Sprintf("declared size %q", c.Size),
				}
			}
			fits := c.Employees < th.maxEmployees &&
				(c.AnnualTurnover <= th.maxTurnover || c.BalanceSheetTotal <= th.maxBalance)
			return outcome{
				passed: fits,
				expected: fmt.Sprintf("under %d employees and turnover up to %s or balance-sheet total up to %s for a %s enterprise",
					th.maxEmployees, eur(th.maxTurnover), eur(th.maxBalance), c.Size),
				actual: fmt.Sprintf("%d employees, turnover %s, balance-sheet total %s",
					c.Employees, eur(c.AnnualTurnover), eur(c.BalanceSheetTotal)),
				message: sizeMessage(fits, c.Size),
			}
		},
	},
	{
		id:       "COMP_002",
		name:     "Tax situation regularised",
		severity: model.SeverityCritical,
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			return outcome{
				passed:   !in.Company.HasTaxDebt,
				expected: "no outstanding debt to the tax authority",
				actual:   debtStatus(in.Company.HasTaxDebt),
			}
		},
	},
	{
		id:       "COMP_003",
		name:     "Social security regularised",
		severity: model.SeverityCritical,
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			return outcome{
				passed:   !in.Company.HasSocialSecurityDebt,
				expected: "no outstanding debt to social security",
				actual:   debtStatus(in.Company.HasSocialSecurityDebt),
			}
		},
	},
	{
		id:        "COMP_004",
		name:      "Not an undertaking in difficulty",
		severity:  model.SeverityCritical,
		reference: "Regulation (EU) 651/2014, art. 2(18)",
		eval: func(in model.ComplianceInput, _ rules.ProgramRules) outcome {
			return outcome{
				passed:   !in.Company.InDifficulty,
				expected: "company not classified as an undertaking in difficulty",
				actual:   difficultyStatus(in.Company.InDifficulty),
			}
		},
	},
	{
		id:        "SECT_001",
		name:      "Sector eligibility",
		severity:  model.SeverityCritical,
		reference: "Program excluded-sector list",
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			excluded, match := sectorExcluded(in.Company.SectorCode, pr.ExcludedSectors)
			out := outcome{
				passed:   !excluded,
				expected: "a sector code outside the program exclusion list",
				actual:   fmt.Sprintf("sector code %q", in.Company.SectorCode),
			}
			if excluded {
				out.message = fmt.Sprintf("sector %q is excluded from this program (matches exclusion %q)", in.Company.SectorCode, match)
			}
			return out
		},
	},
	{
		id:       "INV_001",
		name:     "Investment-type eligibility",
		severity: model.SeverityCritical,
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			matched := intersect(in.Investment.InvestmentTypes, pr.EligibleInvestmentTypes)
			out := outcome{
				passed:   len(matched) > 0,
				expected: "at least one investment type from: " + strings.Join(pr.EligibleInvestmentTypes, ", "),
				actual:   "declared types: " + joinOrNone(in.Investment.InvestmentTypes),
			}
			if len(in.Investment.InvestmentTypes) == 0 {
				out.message = "no investment types declared"
			}
			return out
		},
	},
	{
		id:        "PRR_001",
		name:      "Digital transition minimum",
		severity:  model.SeverityCritical,
		reference: "Regulation (EU) 2021/241, digital tagging",
		applicable: func(_ model.Program, pr rules.ProgramRules) bool {
			return pr.MinDigitalPercent > 0
		},
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			return outcome{
				passed:   in.Investment.DigitalPercent >= pr.MinDigitalPercent,
				expected: fmt.Sprintf("digital investment of at least %.0f%%", pr.MinDigitalPercent),
				actual:   fmt.Sprintf("digital investment of %.0f%%", in.Investment.DigitalPercent),
			}
		},
	},
	{
		id:        "PRR_002",
		name:      "Climate transition minimum",
		severity:  model.SeverityCritical,
		reference: "Regulation (EU) 2021/241, climate tagging",
		applicable: func(_ model.Program, pr rules.ProgramRules) bool {
			return pr.MinGreenPercent > 0
		},
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			return outcome{
				passed:   in.Investment.GreenPercent >= pr.MinGreenPercent,
				expected: fmt.Sprintf("green investment of at least %.0f%%", pr.MinGreenPercent),
				actual:   fmt.Sprintf("green investment of %.0f%%", in.Investment.GreenPercent),
			}
		},
	},
	{
		id:       "SITCE_001",
		name:     "Job creation target",
		severity: model.SeverityWarning,
		applicable: func(_ model.Program, pr rules.ProgramRules) bool {
			return pr.MinJobsCreated > 0
		},
		eval: func(in model.ComplianceInput, pr rules.ProgramRules) outcome {
			return outcome{
				passed:   in.Project.JobsCreated >= pr.MinJobsCreated,
				expected: fmt.Sprintf("at least %d jobs created", pr.MinJobsCreated),
				actual:   fmt.Sprintf("%d jobs created", in.Project.JobsCreated),
			}
		},
	},
}

func viabilityMessage(passed bool, rationale string) string {
	if passed {
		return ""
	}
	return rationale
}

func sizeMessage(fits bool, size model.CompanySize) string {
	if fits {
		return ""
	}
	return fmt.Sprintf("declared size %q exceeds its statutory thresholds; the application is rejected rather than reclassified", size)
}

func debtStatus(hasDebt bool) string {
	if hasDebt {
		return "outstanding debt declared"
	}
	return "no outstanding debt"
}

func difficultyStatus(inDifficulty bool) string {
	if inDifficulty {
		return "classified as in difficulty"
	}
	return "not in difficulty"
}

// sectorExcluded matches a CAE code against exclusion entries by exact value
// or prefix, returning the matching entry.
func sectorExcluded(code string, excluded []string) (bool, string) {
	c := strings.TrimSpace(code)
	if c == "" {
		return false, ""
	}
	for _, e := range excluded {
		if e != "" && strings.HasPrefix(c, e) {
			return true, e
		}
	}
	return false, ""
}

// intersect returns the declared types present in the eligible set,
// preserving declaration order.
func intersect(declared, eligible []string) []string {
	set := make(map[string]bool, len(eligible))
	for _, e := range eligible {
		set[strings.ToLower(e)] = true
	}
	var matched []string
	for _, d := range declared {
		if set[strings.ToLower(d)] {
			matched = append(matched, d)
		}
	}
	return matched
}

func joinOrNone(types []string) string {
	if len(types) == 0 {
		return "none"
	}
	return strings.Join(types, ", ")
}
