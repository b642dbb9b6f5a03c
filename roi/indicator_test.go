package roi

import (
	"testing"

	"roihub/models"

	"github.com/stretchr/testify/assert"
)

func TestProductivityScenario(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeProductivity,
		Baseline: models.IndicatorData{
			People: []models.PersonInvolved{
				{HourlyRate: 40, MinutesSpent: 15, FrequencyQuantity: 5000, FrequencyUnit: models.FreqMonth},
			},
		},
		PostIA: models.IndicatorData{
			People: []models.PersonInvolved{
				{HourlyRate: 40, MinutesSpent: 2, FrequencyQuantity: 5000, FrequencyUnit: models.FreqMonth},
			},
		},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// baseline 40 * (15/60) * 5000 = 50000; post 40 * (2/60) * 5000 = 6666.67
	assert.InDelta(t, 43333.33, stats.MonthlyEconomy, 0.01)
	assert.InDelta(t, 520000, stats.AnnualEconomy, 0.1)
	assert.Equal(t, "86.7", stats.ImprovementPct)
}

func TestRevenueIncreaseScenario(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeRevenueIncrease,
		Baseline:        models.IndicatorData{Revenue: 100000},
		PostIA:          models.IndicatorData{Revenue: 120000},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 20000.0, stats.MonthlyEconomy)
	assert.Equal(t, 240000.0, stats.AnnualEconomy)
	assert.Equal(t, "20.0", stats.ImprovementPct)
}

func TestRevenueIncreaseZeroBaseline(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeRevenueIncrease,
		PostIA:          models.IndicatorData{Revenue: 5000},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 5000.0, stats.MonthlyEconomy)
	assert.Equal(t, "100", stats.ImprovementPct)
}

func TestRiskReductionScenario(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeRiskReduction,
		Baseline:        models.IndicatorData{Probability: 30, Impact: 10000, MitigationCost: 0},
		PostIA:          models.IndicatorData{Probability: 10, Impact: 10000, MitigationCost: 500},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// riskBefore 3000, riskAfter 1000, minus the extra 500 of mitigation
	assert.Equal(t, 1500.0, stats.MonthlyEconomy)
	assert.Equal(t, "66.7", stats.ImprovementPct)
}

func TestMarginImprovement(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeMarginImprovement,
		Baseline:        models.IndicatorData{Revenue: 10000, Cost: 8000},
		PostIA:          models.IndicatorData{Revenue: 11000, Cost: 7000},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 2000.0, stats.MonthlyEconomy)
	assert.Equal(t, "100.0", stats.ImprovementPct)
}

func TestMarginImprovementNegativeBaselineMargin(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeMarginImprovement,
		Baseline:        models.IndicatorData{Revenue: 5000, Cost: 7000},
		PostIA:          models.IndicatorData{Revenue: 7000, Cost: 6000},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// margin goes from -2000 to 1000; pct uses |baseline margin|
	assert.Equal(t, 3000.0, stats.MonthlyEconomy)
	assert.Equal(t, "150.0", stats.ImprovementPct)
}

func TestDecisionQualityAddsExpectedErrorCost(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeDecisionQuality,
		Baseline:        models.IndicatorData{DecisionCount: 100, AccuracyPct: 80, ErrorCost: 50},
		PostIA:          models.IndicatorData{DecisionCount: 100, AccuracyPct: 95, ErrorCost: 50},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// expected error cost drops from 100*0.2*50=1000 to 100*0.05*50=250
	assert.InDelta(t, 750.0, stats.MonthlyEconomy, 0.001)
	assert.Equal(t, "75.0", stats.ImprovementPct)
}

func TestSatisfactionChurnAndRevenue(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeSatisfaction,
		Baseline: models.IndicatorData{
			ChurnRate: 10, ClientCount: 200, ValuePerClient: 100, Score: 6, Revenue: 1000,
		},
		PostIA: models.IndicatorData{
			ChurnRate: 5, ClientCount: 200, ValuePerClient: 100, Score: 8, Revenue: 1500,
		},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// churn value 2000 -> 1000, plus 500 revenue delta
	assert.InDelta(t, 1500.0, stats.MonthlyEconomy, 0.001)
	assert.Equal(t, "33.3", stats.ImprovementPct)
}

func TestSatisfactionWithoutScores(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeSatisfaction,
		Baseline:        models.IndicatorData{ChurnRate: 10, ClientCount: 100, ValuePerClient: 50},
		PostIA:          models.IndicatorData{ChurnRate: 10, ClientCount: 100, ValuePerClient: 50},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 0.0, stats.MonthlyEconomy)
	assert.Equal(t, "0", stats.ImprovementPct)
}

func TestRelatedCostsAnnualizesBaselineTools(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeRelatedCosts,
		Baseline: models.IndicatorData{
			Tools: []models.ToolCost{
				{MonthlyCost: 100, FrequencyQuantity: 1, FrequencyUnit: models.FreqMonth},
				{MonthlyCost: 50, FrequencyQuantity: 2, FrequencyUnit: models.FreqQuarter},
			},
		},
	}

	stats := CalculateIndicatorStats(ind, nil)

	// 100*1*12 + 50*2*4 = 1600 per year
	assert.InDelta(t, 1600.0/12, stats.MonthlyEconomy, 0.001)
	assert.InDelta(t, 1600.0, stats.AnnualEconomy, 0.001)
	assert.Equal(t, "100", stats.ImprovementPct)
}

func TestRelatedCostsEmpty(t *testing.T) {
	ind := models.Indicator{ImprovementType: models.TypeRelatedCosts}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 0.0, stats.MonthlyEconomy)
	assert.Equal(t, "0", stats.ImprovementPct)
}

func TestDefaultModelValueDelta(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeAnalyticalCapacity,
		Baseline:        models.IndicatorData{Value: 200},
		PostIA:          models.IndicatorData{Value: 260},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 60.0, stats.MonthlyEconomy)
	assert.Equal(t, "30.0", stats.ImprovementPct)
}

func TestUnknownTypeFallsBackToValueDelta(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.ImprovementType("something_new"),
		Baseline:        models.IndicatorData{Value: 10},
		PostIA:          models.IndicatorData{Value: 10},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 0.0, stats.MonthlyEconomy)
	assert.Equal(t, "0", stats.ImprovementPct)
}

func TestEqualValuesYieldZero(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeOther,
		Baseline:        models.IndicatorData{Value: 42},
		PostIA:          models.IndicatorData{Value: 42},
	}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 0.0, stats.MonthlyEconomy)
	assert.Equal(t, "0", stats.ImprovementPct)
}

func TestProductivityAllZeroInputs(t *testing.T) {
	ind := models.Indicator{ImprovementType: models.TypeProductivity}

	stats := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, 0.0, stats.MonthlyEconomy)
	assert.Equal(t, 0.0, stats.AnnualEconomy)
	assert.Equal(t, "0", stats.ImprovementPct)
}

func TestAnnualIsAlwaysTwelveTimesMonthly(t *testing.T) {
	types := []models.ImprovementType{
		models.TypeProductivity, models.TypeSpeed, models.TypeDecisionQuality,
		models.TypeRevenueIncrease, models.TypeMarginImprovement, models.TypeRiskReduction,
		models.TypeSatisfaction, models.TypeRelatedCosts, models.TypeAnalyticalCapacity,
		models.TypeOther, models.TypeCustom,
	}
	base := models.IndicatorData{
		People:        []models.PersonInvolved{{HourlyRate: 35, MinutesSpent: 20, FrequencyQuantity: 3, FrequencyUnit: models.FreqDay}},
		Tools:         []models.ToolCost{{MonthlyCost: 99, OtherCosts: 10, FrequencyQuantity: 1, FrequencyUnit: models.FreqMonth}},
		Value:         100, Revenue: 5000, Cost: 300, Probability: 20, Impact: 8000,
		DecisionCount: 40, AccuracyPct: 85, ErrorCost: 120, Score: 7,
		ClientCount:   50, ValuePerClient: 200, ChurnRate: 8,
	}
	post := base
	post.Value = 130
	post.Revenue = 5600
	post.AccuracyPct = 92
	post.ChurnRate = 5

	for _, it := range types {
		ind := models.Indicator{ImprovementType: it, Baseline: base, PostIA: post}
		stats := CalculateIndicatorStats(ind, nil)
		assert.Equal(t, stats.MonthlyEconomy*12, stats.AnnualEconomy, "type %s", it)
	}
}

func TestCalculateIndicatorStatsIsIdempotent(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeProductivity,
		Baseline: models.IndicatorData{
			People: []models.PersonInvolved{{HourlyRate: 50, MinutesSpent: 30, FrequencyQuantity: 10, FrequencyUnit: models.FreqWeek}},
			Tools:  []models.ToolCost{{MonthlyCost: 200}},
			Cost:   150,
		},
		PostIA: models.IndicatorData{
			People: []models.PersonInvolved{{HourlyRate: 50, MinutesSpent: 5, FrequencyQuantity: 10, FrequencyUnit: models.FreqWeek}},
			Tools:  []models.ToolCost{{MonthlyCost: 350, OtherCosts: 20}},
		},
	}

	first := CalculateIndicatorStats(ind, nil)
	second := CalculateIndicatorStats(ind, nil)

	assert.Equal(t, first, second)
}

func TestRelatedCostsHonorsOverrides(t *testing.T) {
	ind := models.Indicator{
		ImprovementType: models.TypeRelatedCosts,
		Baseline: models.IndicatorData{
			Tools: []models.ToolCost{{MonthlyCost: 10, FrequencyQuantity: 1, FrequencyUnit: models.FreqDay}},
		},
	}

	defaultStats := CalculateIndicatorStats(ind, nil)
	overridden := CalculateIndicatorStats(ind, models.FrequencyOverrides{models.FreqDay: 200})

	assert.InDelta(t, 10*260.0, defaultStats.AnnualEconomy, 0.001)
	assert.InDelta(t, 10*200.0, overridden.AnnualEconomy, 0.001)
}
