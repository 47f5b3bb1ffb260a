package compliance

import "github.com/atlantico-advisors/funding-cli/internal/model"

// confidenceFloor keeps confidence at or above this value even when no
// optional data is present, so fully-specified mandatory data alone reads
// as trustworthy. The floor and the even weighting are heuristics, tuned
// empirically rather than contractual.
const confidenceFloor = 0.7

// Confidence quantifies how much of the optional, enriching input was
// present, blended with the baseline floor. Informational only; it never
// participates in the compliance decision.
func Confidence(in model.ComplianceInput) float64 {
	checklist := []bool{
		in.Project.SustainabilityScore != nil,
		len(in.Investment.CostBreakdown) > 0,
		len(in.Investment.InvestmentTypes) > 0,
		in.Company.Region != "",
		in.Company.SectorCode != "",
		in.Company.NIF != "",
		in.Company.AgeYears > 0,
		in.Project.DurationYears > 0,
	}

	present := 0
	for _, ok := range checklist {
		if ok {
			present++
		}
	}

	fraction := float64(present) / float64(len(checklist))
	return confidenceFloor + (1-confidenceFloor)*fraction
}
