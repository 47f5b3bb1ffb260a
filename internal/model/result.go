package model

import "time"

// Severity classifies how a failed check affects the overall outcome.
// Only failed critical checks make a result non-compliant.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ComplianceCheck is one evaluated rule. Checks are produced by the evaluator
// and never mutated afterwards.
type ComplianceCheck struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Severity  Severity `json:"severity"`
	Passed    bool     `json:"passed"`
	Expected  string   `json:"expected"`
	Actual    string   `json:"actual"`
	Message   string   `json:"message"`
	Reference string   `json:"reference,omitempty"` // rule citation
}

// ComplianceResult is the aggregate output of one validation call. It is
// built once, immutable thereafter, and safe to serialize for audit.
type ComplianceResult struct {
	IsCompliant           bool              `json:"is_compliant"`
	Program               Program           `json:"program"`
	Checks                []ComplianceCheck `json:"checks"`
	CriticalFailures      int               `json:"critical_failures"`
	Warnings              int               `json:"warnings"`
	Recommendations       []string          `json:"recommendations"`
	Confidence            float64           `json:"confidence"` // 0.0-1.0, input completeness
	MaxFundingRatePercent float64           `json:"max_funding_rate_percent"`
	MaxFundingAmount      float64           `json:"max_funding_amount"` // EUR, rounded half-up to cents
	RequestedFundingValid bool              `json:"requested_funding_valid"`
	ValidatedAt           time.Time         `json:"validated_at"`
	RuleSetVersion        string            `json:"rule_set_version"`
	EngineVersion         string            `json:"engine_version"`
	RunID                 string            `json:"run_id"`
}

// Check returns the check with the given id, or nil if absent.
func (r *ComplianceResult) Check(id string) *ComplianceCheck {
	for i := range r.Checks {
		if r.Checks[i].ID == id {
			return &r.Checks[i]
		}
	}
	return nil
}

// FailedCritical returns the failed critical checks in battery order.
func (r *ComplianceResult) FailedCritical() []ComplianceCheck {
	var failed []ComplianceCheck
	for _, c := range r.Checks {
		if !c.Passed && c.Severity == SeverityCritical {
			failed = append(failed, c)
		}
	}
	return failed
}
