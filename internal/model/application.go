// Package model defines the data model shared by the compliance engine:
// the immutable application input (company, investment, project) and the
// structured validation result consumed by report rendering and audit.
package model

// Program identifies the funding program an application targets.
type Program string

const (
	ProgramPT2030 Program = "PT2030"
	ProgramPRR    Program = "PRR"
	ProgramSITCE  Program = "SITCE"
	ProgramOther  Program = "OTHER"
)

// CompanySize is the EU SME size classification declared by the applicant.
type CompanySize string

const (
	SizeMicro  CompanySize = "micro"
	SizeSmall  CompanySize = "small"
	SizeMedium CompanySize = "medium"
	SizeLarge  CompanySize = "large"
)

// CostCategory labels an entry in the investment cost breakdown.
type CostCategory string

const (
	CostEquipment    CostCategory = "equipment"
	CostSoftware     CostCategory = "software"
	CostConstruction CostCategory = "construction"
	CostRD           CostCategory = "rd"
	CostConsulting   CostCategory = "consulting"
)

// CompanyInfo describes the applicant company. The declared Size is checked
// against statutory thresholds by the evaluator, never silently reclassified.
type CompanyInfo struct {
	NIF                   string      `json:"nif"`
	Size                  CompanySize `json:"size"`
	Employees             int         `json:"employees"`
	AnnualTurnover        float64     `json:"annual_turnover"`
	BalanceSheetTotal     float64     `json:"balance_sheet_total"`
	SectorCode            string      `json:"sector_code"` // CAE rev.3 code
	Region                string      `json:"region"`
	AgeYears              int         `json:"age_years"`
	HasTaxDebt            bool        `json:"has_tax_debt"`
	HasSocialSecurityDebt bool        `json:"has_social_security_debt"`
	InDifficulty          bool        `json:"in_difficulty"` // EU state-aid "undertaking in difficulty"
}

// InvestmentInfo describes the proposed investment. Ordering invariants
// (requested <= eligible <= total) are evaluated as checks, not enforced
// at construction.
type InvestmentInfo struct {
	Total            float64                  `json:"total"`
	Eligible         float64                  `json:"eligible"`
	FundingRequested float64                  `json:"funding_requested"`
	CostBreakdown    map[CostCategory]float64 `json:"cost_breakdown,omitempty"`
	InvestmentTypes  []string                 `json:"investment_types,omitempty"`
	GreenPercent     float64                  `json:"green_percent"`
	DigitalPercent   float64                  `json:"digital_percent"`
}

// RDShare returns the fraction of total investment allocated to R&D costs.
// Returns 0 when total is zero or no breakdown is present.
func (inv InvestmentInfo) RDShare() float64 {
	if inv.Total <= 0 {
		return 0
	}
	return inv.CostBreakdown[CostRD] / inv.Total
}

// ProjectInfo describes the project the investment funds. VALF and TRF are
// supplied pre-computed by the financial calculator. A nil SustainabilityScore
// means unknown, treated as neutral rather than zero.
type ProjectInfo struct {
	Name                   string   `json:"name"`
	DurationYears          int      `json:"duration_years"`
	JobsCreated            int      `json:"jobs_created"`
	JobsMaintained         int      `json:"jobs_maintained"`
	VALF                   float64  `json:"valf"` // NPV at the program discount rate, EUR
	TRF                    float64  `json:"trf"`  // internal rate of return, percent
	SustainabilityScore    *float64 `json:"sustainability_score,omitempty"` // 0-100
	DNSHCompliant          bool     `json:"dnsh_compliant"`
	GenderEqualityPlan     bool     `json:"gender_equality_plan"`
	AccessibilityCompliant bool     `json:"accessibility_compliant"`
}

// ComplianceInput is the complete, immutable input to one validation call.
type ComplianceInput struct {
	Program    Program        `json:"program"`
	Company    CompanyInfo    `json:"company"`
	Investment InvestmentInfo `json:"investment"`
	Project    ProjectInfo    `json:"project"`
}
