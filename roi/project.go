package roi

import "roihub/models"

// ProjectTotals is the derived pair persisted on a project after any
// indicator or cost change. The recalculation path is the only writer of
// these cached fields.
type ProjectTotals struct {
	TotalEconomyAnnual float64 `json:"total_economy_annual"`
	ROIPercentage      float64 `json:"roi_percentage"`
}

// RecalculateProject folds the given indicators into the project's annual
// economy and ROI. Callers pass the indicator set they want counted
// (normally the project's active indicators).
func RecalculateProject(project models.Project, indicators []models.Indicator, overrides models.FrequencyOverrides) ProjectTotals {
	var monthlyTotal float64
	for _, ind := range indicators {
		monthlyTotal += CalculateIndicatorStats(ind, overrides).MonthlyEconomy
	}

	annual := monthlyTotal * 12

	totalCost := project.ImplementationCost + project.MonthlyMaintenanceCost*12
	var roiPct float64
	if totalCost != 0 {
		roiPct = (annual - totalCost) / totalCost * 100
	}

	return ProjectTotals{
		TotalEconomyAnnual: annual,
		ROIPercentage:      roiPct,
	}
}
