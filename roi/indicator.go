package roi

import (
	"fmt"
	"math"

	"roihub/models"
)

// IndicatorStats is the monetary valuation of a single indicator.
// ImprovementPct is pre-formatted with one decimal place; sentinel branches
// ("0", "100") are returned as-is so division by zero never surfaces as NaN.
type IndicatorStats struct {
	MonthlyEconomy float64 `json:"monthlyEconomy"`
	AnnualEconomy  float64 `json:"annualEconomy"`
	ImprovementPct string  `json:"improvementPct"`
}

// CalculateIndicatorStats values one indicator by comparing its baseline
// measurement against the post-AI one, dispatching on the improvement type.
// It is total: every absent field counts as 0 and every ratio is guarded, so
// no combination of inputs produces an error.
func CalculateIndicatorStats(ind models.Indicator, overrides models.FrequencyOverrides) IndicatorStats {
	base, post := ind.Baseline, ind.PostIA

	var monthly float64
	var pct string

	switch ind.ImprovementType {
	case models.TypeProductivity, models.TypeSpeed:
		b := sideCost(base)
		p := sideCost(post)
		monthly = b - p
		if b != 0 {
			pct = formatPct((b - p) / b * 100)
		} else {
			pct = "0"
		}

	case models.TypeDecisionQuality:
		b := sideCost(base) + expectedErrorCost(base)
		p := sideCost(post) + expectedErrorCost(post)
		monthly = b - p
		if b != 0 {
			pct = formatPct((b - p) / b * 100)
		} else {
			pct = "0"
		}

	case models.TypeRevenueIncrease:
		monthly = post.Revenue - base.Revenue
		if base.Revenue != 0 {
			pct = formatPct((post.Revenue/base.Revenue - 1) * 100)
		} else {
			pct = "100"
		}

	case models.TypeMarginImprovement:
		baseMargin := base.Revenue - base.Cost
		postMargin := post.Revenue - post.Cost
		monthly = postMargin - baseMargin
		if baseMargin != 0 {
			pct = formatPct((postMargin - baseMargin) / math.Abs(baseMargin) * 100)
		} else {
			pct = "100"
		}

	case models.TypeRiskReduction:
		riskBefore := base.Probability / 100 * base.Impact
		riskAfter := post.Probability / 100 * post.Impact
		monthly = (riskBefore - riskAfter) + (base.MitigationCost - post.MitigationCost)
		if riskBefore > 0 {
			pct = formatPct((riskBefore - riskAfter) / riskBefore * 100)
		} else {
			pct = "0"
		}

	case models.TypeSatisfaction:
		churnBefore := base.ChurnRate / 100 * base.ClientCount * base.ValuePerClient
		churnAfter := post.ChurnRate / 100 * post.ClientCount * post.ValuePerClient
		monthly = (churnBefore - churnAfter) + (post.Revenue - base.Revenue)
		if base.Score != 0 && post.Score != 0 {
			pct = formatPct((post.Score - base.Score) / base.Score * 100)
		} else {
			pct = "0"
		}

	case models.TypeRelatedCosts:
		var annualRelated float64
		for _, tool := range base.Tools {
			annualRelated += tool.MonthlyCost * tool.FrequencyQuantity * AnnualMultiplier(tool.FrequencyUnit, overrides)
		}
		monthly = annualRelated / 12
		if annualRelated > 0 {
			pct = "100"
		} else {
			pct = "0"
		}

	default:
		// analytical_capacity, other, custom and any unrecognized type all
		// fall back to the plain value-delta model.
		monthly = post.Value - base.Value
		if base.Value != 0 {
			pct = formatPct((post.Value/base.Value - 1) * 100)
		} else {
			pct = "0"
		}
	}

	return IndicatorStats{
		MonthlyEconomy: monthly,
		AnnualEconomy:  monthly * 12,
		ImprovementPct: pct,
	}
}

// sideCost is the total monthly cost of one measurement side: labor plus
// tools plus the flat cost field.
func sideCost(d models.IndicatorData) float64 {
	return calcPeopleCost(d.People) + calcToolsCost(d.Tools) + d.Cost
}

// calcPeopleCost sums the monthly labor cost of everyone involved. The
// monthly multiplier table is used here, not the annual one: this feeds
// monthly cost rollups, while annual-hours projections are computed
// separately in the portfolio aggregation.
func calcPeopleCost(people []models.PersonInvolved) float64 {
	var total float64
	for _, p := range people {
		total += p.HourlyRate * (p.MinutesSpent / 60) * p.FrequencyQuantity * MonthlyMultiplier(p.FrequencyUnit)
	}
	return total
}

// calcToolsCost sums monthly plus other costs over every tool line.
func calcToolsCost(tools []models.ToolCost) float64 {
	var total float64
	for _, t := range tools {
		total += t.MonthlyCost + t.OtherCosts
	}
	return total
}

// expectedErrorCost is the decision-quality surcharge: how much the expected
// share of wrong decisions costs on one side.
func expectedErrorCost(d models.IndicatorData) float64 {
	return d.DecisionCount * (1 - d.AccuracyPct/100) * d.ErrorCost
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
