package merit

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Weights holds the merit-formula component weights. Weights sum to 100.
type Weights struct {
	FinancialGap     float64 `yaml:"financial_gap"`
	Innovation       float64 `yaml:"innovation"`
	Sustainability   float64 `yaml:"sustainability"`
	JobCreation      float64 `yaml:"job_creation"`
	RegionalPriority float64 `yaml:"regional_priority"`
}

// DefaultWeights returns the merit weights used when no file is supplied.
func DefaultWeights() Weights {
	return Weights{
		FinancialGap:     30,
		Innovation:       25,
		Sustainability:   20,
		JobCreation:      15,
		RegionalPriority: 10,
	}
}

// LoadWeights reads merit weights from a YAML file. The document has a
// top-level "merit" key; zero-valued entries fall back to the defaults.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, eris.Wrapf(err, "merit: read weights %s", path)
	}

	var wrapper struct {
		Merit Weights `yaml:"merit"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Weights{}, eris.Wrap(err, "merit: parse weights")
	}

	w := wrapper.Merit
	defaults := DefaultWeights()
	if w.FinancialGap == 0 {
		w.FinancialGap = defaults.FinancialGap
	}
	if w.Innovation == 0 {
		w.Innovation = defaults.Innovation
	}
	if w.Sustainability == 0 {
		w.Sustainability = defaults.Sustainability
	}
	if w.JobCreation == 0 {
		w.JobCreation = defaults.JobCreation
	}
	if w.RegionalPriority == 0 {
		w.RegionalPriority = defaults.RegionalPriority
	}

	return w, nil
}

// Sum returns the sum of all component weights.
func (w Weights) Sum() float64 {
	return w.FinancialGap + w.Innovation + w.Sustainability +
		w.JobCreation + w.RegionalPriority
}

// Validate checks that the weights are internally consistent.
func (w Weights) Validate() error {
	var errs []string

	components := map[string]float64{
		"financial_gap":     w.FinancialGap,
		"innovation":        w.Innovation,
		"sustainability":    w.Sustainability,
		"job_creation":      w.JobCreation,
		"regional_priority": w.RegionalPriority,
	}
	for name, v := range components {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	sum := w.Sum()
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	if math.Abs(sum-100) > 1 {
		errs = append(errs, fmt.Sprintf("weights should sum to 100, got %.1f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("merit: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
