package roi

import "roihub/models"

// The two tables below are defined independently on purpose. The annual
// figures for hour/day assume a business calendar (~5-day workweek, 2080
// working hours a year); the monthly figures assume calendar days and are
// used only for monthly cost rollups. Neither table may be derived from the
// other without silently changing historical results.

var defaultAnnualMultipliers = map[models.FrequencyUnit]float64{
	models.FreqHour:    2080,
	models.FreqDay:     260,
	models.FreqWeek:    52,
	models.FreqMonth:   12,
	models.FreqQuarter: 4,
	models.FreqYear:    1,
}

var monthlyMultipliers = map[models.FrequencyUnit]float64{
	models.FreqHour:    720,
	models.FreqDay:     30,
	models.FreqWeek:    4.33,
	models.FreqMonth:   1,
	models.FreqQuarter: 1.0 / 3.0,
	models.FreqYear:    1.0 / 12.0,
}

// AnnualMultiplier returns how many times per year an activity with
// quantity 1 of the given unit occurs. Organizations may override entries of
// the annual table; a nil map keeps the defaults. Unknown units count as 0.
func AnnualMultiplier(unit models.FrequencyUnit, overrides models.FrequencyOverrides) float64 {
	if overrides != nil {
		if m, ok := overrides[unit]; ok {
			return m
		}
	}
	return defaultAnnualMultipliers[unit]
}

// MonthlyMultiplier returns the monthly occurrence factor for a unit. The
// monthly table is fixed; overrides apply to the annual table only.
func MonthlyMultiplier(unit models.FrequencyUnit) float64 {
	return monthlyMultipliers[unit]
}

// AnnualFrequency converts a (quantity, unit) pair into executions per year.
func AnnualFrequency(quantity float64, unit models.FrequencyUnit, overrides models.FrequencyOverrides) float64 {
	return quantity * AnnualMultiplier(unit, overrides)
}
