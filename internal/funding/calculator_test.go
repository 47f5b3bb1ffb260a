package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlantico-advisors/funding-cli/internal/model"
	"github.com/atlantico-advisors/funding-cli/internal/rules"
)

func testRules() rules.FundingRules {
	return rules.FundingRules{
		BaseRateBySize: map[model.CompanySize]float64{
			model.SizeMicro:  60,
			model.SizeSmall:  50,
			model.SizeMedium: 40,
			model.SizeLarge:  30,
		},
		MaxRatePercent:        85,
		PriorityRegions:       []string{"Norte", "Centro", "Alentejo"},
		RegionalBonus:         10,
		InnovationBonus:       5,
		MinRDShare:            0.10,
		GreenBonus:            5,
		GreenBonusThreshold:   40,
		DigitalBonus:          5,
		DigitalBonusThreshold: 30,
	}
}

func TestCalculateBaseRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size model.CompanySize
		want float64
	}{
		{model.SizeMicro, 60},
		{model.SizeSmall, 50},
		{model.SizeMedium, 40},
		{model.SizeLarge, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			t.Parallel()

			company := model.CompanyInfo{Size: tt.size, Region: "Lisboa"}
			inv := model.InvestmentInfo{Eligible: 100_000}

			got := Calculate(company, inv, testRules())
			assert.Equal(t, tt.want, got.RatePercent)
			require.Len(t, got.Breakdown, 1)
			assert.Equal(t, "base_rate", got.Breakdown[0].Name)
		})
	}
}

func TestCalculateBonuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		company  model.CompanyInfo
		inv      model.InvestmentInfo
		wantRate float64
		wantPart string
	}{
		{
			name:     "regional bonus in priority region",
			company:  model.CompanyInfo{Size: model.SizeMedium, Region: "Norte"},
			inv:      model.InvestmentInfo{Eligible: 100_000},
			wantRate: 50,
			wantPart: "regional_bonus",
		},
		{
			name:     "region matching is case insensitive",
			company:  model.CompanyInfo{Size: model.SizeMedium, Region: "  norte "},
			inv:      model.InvestmentInfo{Eligible: 100_000},
			wantRate: 50,
			wantPart: "regional_bonus",
		},
		{
			name:    "innovation bonus at rd share threshold",
			company: model.CompanyInfo{Size: model.SizeMedium, Region: "Lisboa"},
			inv: model.InvestmentInfo{
				Total:         100_000,
				Eligible:      100_000,
				CostBreakdown: map[model.CostCategory]float64{model.CostRD: 10_000},
			},
			wantRate: 45,
			wantPart: "innovation_bonus",
		},
		{
			name:     "green bonus at threshold",
			company:  model.CompanyInfo{Size: model.SizeMedium, Region: "Lisboa"},
			inv:      model.InvestmentInfo{Eligible: 100_000, GreenPercent: 40},
			wantRate: 45,
			wantPart: "green_bonus",
		},
		{
			name:     "digital bonus at threshold",
			company:  model.CompanyInfo{Size: model.SizeMedium, Region: "Lisboa"},
			inv:      model.InvestmentInfo{Eligible: 100_000, DigitalPercent: 30},
			wantRate: 45,
			wantPart: "digital_bonus",
		},
		{
			name:     "below-threshold shares earn nothing",
			company:  model.CompanyInfo{Size: model.SizeMedium, Region: "Lisboa"},
			inv:      model.InvestmentInfo{Eligible: 100_000, GreenPercent: 39.9, DigitalPercent: 29.9},
			wantRate: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(tt.company, tt.inv, testRules())
			assert.Equal(t, tt.wantRate, got.RatePercent)

			names := make([]string, 0, len(got.Breakdown))
			for _, c := range got.Breakdown {
				names = append(names, c.Name)
			}
			if tt.wantPart != "" {
				assert.Contains(t, names, tt.wantPart)
			} else {
				assert.Equal(t, []string{"base_rate"}, names)
			}
		})
	}
}

func TestCalculateCeilingCap(t *testing.T) {
	t.Parallel()

	// Micro in a priority region with every bonus: 60+10+5+5+5 = 85 exactly.
	company := model.CompanyInfo{Size: model.SizeMicro, Region: "Centro"}
	inv := model.InvestmentInfo{
		Total:          100_000,
		Eligible:       100_000,
		GreenPercent:   50,
		DigitalPercent: 50,
		CostBreakdown:  map[model.CostCategory]float64{model.CostRD: 20_000},
	}

	got := Calculate(company, inv, testRules())
	assert.Equal(t, 85.0, got.RatePercent)

	// Lower the ceiling so the cap engages and records a negative component.
	fr := testRules()
	fr.MaxRatePercent = 75
	capped := Calculate(company, inv, fr)
	assert.Equal(t, 75.0, capped.RatePercent)

	last := capped.Breakdown[len(capped.Breakdown)-1]
	assert.Equal(t, "program_ceiling", last.Name)
	assert.Equal(t, -10.0, last.Percent)
}

func TestCalculateAmountRounding(t *testing.T) {
	t.Parallel()

	// 33333.33 x 40% = 13333.332, rounds down; 33333.34 x 40% = 13333.336,
	// the half-up cent rounds to 13333.34.
	company := model.CompanyInfo{Size: model.SizeMedium, Region: "Lisboa"}

	a := Calculate(company, model.InvestmentInfo{Eligible: 33_333.33}, testRules())
	assert.Equal(t, "13333.33", a.MaxAmount.StringFixed(2))

	b := Calculate(company, model.InvestmentInfo{Eligible: 33_333.34}, testRules())
	assert.Equal(t, "13333.34", b.MaxAmount.StringFixed(2))
}

func TestCalculateRequestedValidInclusive(t *testing.T) {
	t.Parallel()

	company := model.CompanyInfo{Size: model.SizeSmall, Region: "Lisboa"}

	tests := []struct {
		name      string
		requested float64
		want      bool
	}{
		{name: "below maximum", requested: 49_999.99, want: true},
		{name: "exactly at maximum", requested: 50_000, want: true},
		{name: "one cent above", requested: 50_000.01, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := model.InvestmentInfo{Eligible: 100_000, FundingRequested: tt.requested}
			got := Calculate(company, inv, testRules())
			assert.Equal(t, tt.want, got.RequestedValid)
		})
	}
}

func TestInPriorityRegion(t *testing.T) {
	t.Parallel()

	priority := []string{"Norte", "Acores"}

	assert.True(t, InPriorityRegion("norte", priority))
	assert.True(t, InPriorityRegion(" ACORES ", priority))
	assert.False(t, InPriorityRegion("Lisboa", priority))
	assert.False(t, InPriorityRegion("", priority))
	assert.False(t, InPriorityRegion("Norte", nil))
}

func TestCalculateSmallerCompaniesNeverRateLower(t *testing.T) {
	t.Parallel()

	// Identical applications differing only in size: micro >= small >=
	// medium >= large.
	inv := model.InvestmentInfo{
		Total:          200_000,
		Eligible:       200_000,
		GreenPercent:   45,
		DigitalPercent: 35,
		CostBreakdown:  map[model.CostCategory]float64{model.CostRD: 30_000},
	}

	order := []model.CompanySize{model.SizeMicro, model.SizeSmall, model.SizeMedium, model.SizeLarge}
	prev := -1.0
	for i := len(order) - 1; i >= 0; i-- {
		company := model.CompanyInfo{Size: order[i], Region: "Alentejo"}
		got := Calculate(company, inv, testRules())
		assert.GreaterOrEqual(t, got.RatePercent, prev, "size %s", order[i])
		prev = got.RatePercent
	}
}

func TestCalculateUnknownSizeHasZeroBase(t *testing.T) {
	t.Parallel()

	company := model.CompanyInfo{Size: model.CompanySize("holding"), Region: "Lisboa"}
	got := Calculate(company, model.InvestmentInfo{Eligible: 100_000}, testRules())
	assert.Zero(t, got.RatePercent)
	assert.True(t, got.MaxAmount.IsZero())
}
