package roi

import (
	"testing"
	"time"

	"roihub/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestEmptyPortfolioIsAllZeros(t *testing.T) {
	stats := CalculateKPIStats([]models.Project{}, []models.Indicator{}, nil)

	assert.Equal(t, models.KPIStats{}, stats)
}

func TestEconomiaAnualPrefersCachedValue(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, TotalEconomyAnnual: floatPtr(90000)},
	}
	// The live indicator would contribute 120000/year, but the cached value wins.
	indicators := []models.Indicator{
		{
			ProjectID:       "p1",
			IsActive:        true,
			ImprovementType: models.TypeRevenueIncrease,
			PostIA:          models.IndicatorData{Revenue: 10000},
		},
	}

	stats := CalculateKPIStats(projects, indicators, nil)

	assert.Equal(t, 90000.0, stats.EconomiaAnual)
}

func TestEconomiaAnualRecomputesWhenNoCache(t *testing.T) {
	projects := []models.Project{{ID: "p1", Status: models.StatusDevelopment}}
	indicators := []models.Indicator{
		{
			ProjectID:       "p1",
			IsActive:        true,
			ImprovementType: models.TypeRevenueIncrease,
			Baseline:        models.IndicatorData{Revenue: 100000},
			PostIA:          models.IndicatorData{Revenue: 120000},
		},
	}

	stats := CalculateKPIStats(projects, indicators, nil)

	assert.Equal(t, 240000.0, stats.EconomiaAnual)
}

func TestInactiveIndicatorsAreExcluded(t *testing.T) {
	projects := []models.Project{{ID: "p1", Status: models.StatusDevelopment}}
	indicators := []models.Indicator{
		{
			ProjectID:       "p1",
			IsActive:        false,
			ImprovementType: models.TypeRevenueIncrease,
			PostIA:          models.IndicatorData{Revenue: 50000},
		},
	}

	stats := CalculateKPIStats(projects, indicators, nil)

	assert.Equal(t, 0.0, stats.EconomiaAnual)
}

func TestROITotalExcludesNonPositiveROI(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, ROIPercentage: floatPtr(120)},
		{ID: "p2", Status: models.StatusProduction, ROIPercentage: floatPtr(-40)},
		{ID: "p3", Status: models.StatusProduction, ROIPercentage: floatPtr(80)},
	}

	stats := CalculateKPIStats(projects, nil, nil)

	// p2 still counts as a production project but not in the average.
	assert.Equal(t, 3, stats.ProjetosProducao)
	assert.Equal(t, 100.0, stats.ROITotal)
}

func TestROITotalDerivesWhenNoCache(t *testing.T) {
	projects := []models.Project{
		{
			ID:                     "p1",
			Status:                 models.StatusProduction,
			ImplementationCost:     10000,
			MonthlyMaintenanceCost: 0,
			TotalEconomyAnnual:     floatPtr(30000),
		},
	}

	stats := CalculateKPIStats(projects, nil, nil)

	// (30000 - 10000) / 10000 * 100
	assert.Equal(t, 200.0, stats.ROITotal)
}

func TestStatusCounts(t *testing.T) {
	projects := []models.Project{
		{Status: models.StatusProduction},
		{Status: models.StatusProduction},
		{Status: models.StatusCompleted},
		{Status: models.StatusPlanning},
		{Status: models.StatusCancelled},
	}

	stats := CalculateKPIStats(projects, nil, nil)

	assert.Equal(t, 2, stats.ProjetosProducao)
	assert.Equal(t, 1, stats.ProjetosConcluidos)
}

func TestHoursSavedCoversLaborModelsOnly(t *testing.T) {
	person := func(minutes float64) []models.PersonInvolved {
		return []models.PersonInvolved{{HourlyRate: 60, MinutesSpent: minutes, FrequencyQuantity: 100, FrequencyUnit: models.FreqMonth}}
	}
	indicators := []models.Indicator{
		{
			ProjectID: "p1", IsActive: true, ImprovementType: models.TypeProductivity,
			Baseline: models.IndicatorData{People: person(30)},
			PostIA:   models.IndicatorData{People: person(6)},
		},
		{
			// Revenue indicators carry no labor hours regardless of people lists.
			ProjectID: "p1", IsActive: true, ImprovementType: models.TypeRevenueIncrease,
			Baseline: models.IndicatorData{People: person(30)},
			PostIA:   models.IndicatorData{People: person(6)},
		},
	}
	projects := []models.Project{{ID: "p1", Status: models.StatusProduction}}

	stats := CalculateKPIStats(projects, indicators, nil)

	// (30/60)*100*12 = 600 baseline hours, (6/60)*100*12 = 120 after
	assert.Equal(t, 600.0, stats.HorasBaselineAno)
	assert.Equal(t, 120.0, stats.HorasPosIAAno)
	assert.Equal(t, 480.0, stats.HorasEconomizadasAno)
	assert.Equal(t, 600.0*60, stats.CustoMOBaseline)
	assert.Equal(t, 120.0*60, stats.CustoMOPosIA)
	assert.Equal(t, 480.0*60, stats.EconomiaMO)
}

func TestPaybackMedioSkipsNonPositiveEconomy(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, ImplementationCost: 24000, TotalEconomyAnnual: floatPtr(48000)},
		{ID: "p2", Status: models.StatusProduction, ImplementationCost: 10000, TotalEconomyAnnual: floatPtr(0)},
		{ID: "p3", Status: models.StatusProduction, ImplementationCost: 10000, TotalEconomyAnnual: floatPtr(-12000)},
	}

	stats := CalculateKPIStats(projects, nil, nil)

	// Only p1 qualifies: 24000 / 4000 = 6 months.
	assert.Equal(t, 6.0, stats.PaybackMedio)
}

func TestCustoIAUsesFirstPersonFrequencyProxy(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, MonthlyMaintenanceCost: 1000},
	}
	indicators := []models.Indicator{
		{
			ProjectID: "p1", IsActive: true, ImprovementType: models.TypeProductivity,
			PostIA: models.IndicatorData{
				People: []models.PersonInvolved{
					{HourlyRate: 40, MinutesSpent: 5, FrequencyQuantity: 10, FrequencyUnit: models.FreqMonth},
				},
				Tools: []models.ToolCost{{MonthlyCost: 50, OtherCosts: 0.25}},
			},
		},
	}

	stats := CalculateKPIStats(projects, indicators, nil)

	// 1000*12 maintenance plus 0.25 per execution at 10*12 executions/year.
	assert.InDelta(t, 12000+0.25*120, stats.CustoIAAnual, 0.001)
}

func TestEconomiaLiquidaAndROICalculado(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, ImplementationCost: 20000, MonthlyMaintenanceCost: 500},
	}
	person := func(minutes float64) []models.PersonInvolved {
		return []models.PersonInvolved{{HourlyRate: 100, MinutesSpent: minutes, FrequencyQuantity: 60, FrequencyUnit: models.FreqMonth}}
	}
	indicators := []models.Indicator{
		{
			ProjectID: "p1", IsActive: true, ImprovementType: models.TypeSpeed,
			Baseline: models.IndicatorData{People: person(60)},
			PostIA:   models.IndicatorData{People: person(12)},
		},
	}

	stats := CalculateKPIStats(projects, indicators, nil)

	// baseline 720 h/yr, post 144 h/yr at 100/h => economia_mo 57600
	assert.Equal(t, 57600.0, stats.EconomiaMO)
	assert.Equal(t, 6000.0, stats.CustoIAAnual)
	assert.Equal(t, 51600.0, stats.EconomiaLiquida)
	assert.InDelta(t, (51600.0-20000)/20000*100, stats.ROICalculado, 0.001)
	assert.InDelta(t, 20000/(51600.0/12), stats.PaybackCalculado, 0.001)
}

func TestPaybackCalculadoZeroWhenNoNetEconomy(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, ImplementationCost: 5000, MonthlyMaintenanceCost: 2000},
	}

	stats := CalculateKPIStats(projects, nil, nil)

	assert.True(t, stats.EconomiaLiquida < 0)
	assert.Equal(t, 0.0, stats.PaybackCalculado)
}

func TestEconomyHistoryBucketsByGoLiveMonth(t *testing.T) {
	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	projects := []models.Project{
		{ID: "p1", Status: models.StatusProduction, GoLiveDate: timePtr(jan), MonthlyMaintenanceCost: 100, TotalEconomyAnnual: floatPtr(12000)},
		{ID: "p2", Status: models.StatusProduction, StartDate: timePtr(mar), MonthlyMaintenanceCost: 200, TotalEconomyAnnual: floatPtr(24000)},
		{ID: "p3", Status: models.StatusPlanning, StartDate: timePtr(jan), TotalEconomyAnnual: floatPtr(99999)},
	}

	history := EconomyHistory(projects, nil, nil, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC))

	assert.Len(t, history, 2)
	assert.Equal(t, "jan/2026", history[0].Mes)
	assert.Equal(t, 1000.0, history[0].Bruta)
	assert.Equal(t, 100.0, history[0].Investimento)
	assert.Equal(t, 900.0, history[0].Liquida)
	assert.Equal(t, "mar/2026", history[1].Mes)
	assert.Equal(t, 2000.0, history[1].Bruta)
	assert.False(t, history[0].Approximate)
}

func TestEconomyHistoryCapsAtTwelveMonths(t *testing.T) {
	projects := make([]models.Project, 0, 15)
	for i := 0; i < 15; i++ {
		d := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		projects = append(projects, models.Project{
			ID: string(rune('a' + i)), Status: models.StatusProduction,
			GoLiveDate: timePtr(d), TotalEconomyAnnual: floatPtr(1200),
		})
	}

	history := EconomyHistory(projects, nil, nil, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC))

	assert.Len(t, history, 12)
	assert.Equal(t, "abr/2025", history[0].Mes)
	assert.Equal(t, "mar/2026", history[11].Mes)
}

func TestEconomyHistorySyntheticFallback(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Status: models.StatusDevelopment, MonthlyMaintenanceCost: 300, TotalEconomyAnnual: floatPtr(36000)},
	}

	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	history := EconomyHistory(projects, nil, nil, now)

	assert.Len(t, history, 6)
	for _, p := range history {
		assert.True(t, p.Approximate)
		assert.Equal(t, 3000.0, p.Bruta)
		assert.Equal(t, 300.0, p.Investimento)
		assert.Equal(t, 2700.0, p.Liquida)
	}
	assert.Equal(t, "mar/2026", history[0].Mes)
	assert.Equal(t, "ago/2026", history[5].Mes)
}

func TestDistributionByTypeDropsNonPositiveAndSortsDesc(t *testing.T) {
	indicators := []models.Indicator{
		{ProjectID: "p1", IsActive: true, ImprovementType: models.TypeRevenueIncrease,
			Baseline: models.IndicatorData{Revenue: 1000}, PostIA: models.IndicatorData{Revenue: 1500}},
		{ProjectID: "p1", IsActive: true, ImprovementType: models.TypeOther,
			Baseline: models.IndicatorData{Value: 0}, PostIA: models.IndicatorData{Value: 900}},
		{ProjectID: "p1", IsActive: true, ImprovementType: models.TypeCustom,
			Baseline: models.IndicatorData{Value: 500}, PostIA: models.IndicatorData{Value: 100}},
		{ProjectID: "p1", IsActive: false, ImprovementType: models.TypeSatisfaction,
			PostIA: models.IndicatorData{Revenue: 99999}},
	}

	items := DistributionByType(indicators, nil)

	// custom is negative, the inactive satisfaction indicator is skipped
	assert.Len(t, items, 2)
	assert.Equal(t, models.TypeOther, items[0].Type)
	assert.Equal(t, 10800.0, items[0].Value)
	assert.Equal(t, "Outro", items[0].Label)
	assert.Equal(t, models.TypeRevenueIncrease, items[1].Type)
	assert.Equal(t, 6000.0, items[1].Value)
	assert.NotEmpty(t, items[1].Color)
}
