// Package rules holds the versioned, program-keyed rule configuration used
// by the compliance evaluator: per-program thresholds, sector exclusions,
// investment-type allow-lists, and funding-rate tables.
//
// A Store is an immutable snapshot loaded once at construction. Picking up
// updated rules means constructing a new Store; there is no in-place reload.
package rules

import (
	_ "embed"
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/atlantico-advisors/funding-cli/internal/model"
)

// Configuration error taxonomy. Both are fatal at construction time.
var (
	ErrConfigurationNotFound = eris.New("rules: configuration not found")
	ErrConfigurationInvalid  = eris.New("rules: configuration invalid")
)

//go:embed rules.json
var defaultRules []byte

// FundingRules holds the funding-rate tiers and bonus tables for a program.
type FundingRules struct {
	BaseRateBySize        map[model.CompanySize]float64 `json:"base_rate_by_size"`
	MaxRatePercent        float64                       `json:"max_rate_percent"`
	PriorityRegions       []string                      `json:"priority_regions"`
	RegionalBonus         float64                       `json:"regional_bonus"`
	InnovationBonus       float64                       `json:"innovation_bonus"`
	MinRDShare            float64                       `json:"min_rd_share"`
	GreenBonus            float64                       `json:"green_bonus"`
	GreenBonusThreshold   float64                       `json:"green_bonus_threshold"`
	DigitalBonus          float64                       `json:"digital_bonus"`
	DigitalBonusThreshold float64                       `json:"digital_bonus_threshold"`
}

// ProgramRules holds the eligibility thresholds for one funding program.
// Zero-valued gate thresholds (MinGreenPercent, MinDigitalPercent,
// MinJobsCreated) mean the corresponding check does not apply.
type ProgramRules struct {
	MinInvestment           float64      `json:"min_investment"`
	MaxTRFPercent           float64      `json:"max_trf_percent"`
	ExcludedSectors         []string     `json:"excluded_sectors"`
	EligibleInvestmentTypes []string     `json:"eligible_investment_types"`
	MinGreenPercent         float64      `json:"min_green_percent"`
	MinDigitalPercent       float64      `json:"min_digital_percent"`
	MinJobsCreated          int          `json:"min_jobs_created"`
	Funding                 FundingRules `json:"funding"`
}

// ruleFile is the on-disk rule document shape.
type ruleFile struct {
	Version  string                  `json:"version"`
	Programs map[string]ProgramRules `json:"programs"`
}

// Store is a read-only, versioned rule set. Safe for concurrent use.
type Store struct {
	version  string
	programs map[string]ProgramRules
}

// LoadDefault builds a Store from the embedded default rule set.
func LoadDefault() (*Store, error) {
	return parse(defaultRules, "embedded")
}

// Load builds a Store from an external rule file. An empty path falls back
// to the embedded default.
func Load(path string) (*Store, error) {
	if path == "" {
		return LoadDefault()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrConfigurationNotFound, "rules: %s", path)
		}
		return nil, eris.Wrapf(err, "rules: read %s", path)
	}

	return parse(data, path)
}

func parse(data []byte, source string) (*Store, error) {
	var rf ruleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, eris.Wrapf(ErrConfigurationInvalid, "rules: parse %s: %v", source, err)
	}

	if rf.Version == "" {
		return nil, eris.Wrapf(ErrConfigurationInvalid, "rules: %s: missing version", source)
	}
	if len(rf.Programs) == 0 {
		return nil, eris.Wrapf(ErrConfigurationInvalid, "rules: %s: missing programs", source)
	}

	zap.L().Debug("rules: loaded",
		zap.String("source", source),
		zap.String("version", rf.Version),
		zap.Int("programs", len(rf.Programs)),
	)

	return &Store{version: rf.Version, programs: rf.Programs}, nil
}

// Version returns the rule-set version string.
func (s *Store) Version() string {
	return s.version
}

// Program returns the rule definition for a program key.
func (s *Store) Program(p model.Program) (ProgramRules, bool) {
	pr, ok := s.programs[string(p)]
	return pr, ok
}

// Programs returns the configured program keys in sorted order.
func (s *Store) Programs() []string {
	keys := make([]string, 0, len(s.programs))
	for k := range s.programs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
