package roi

import (
	"math"
	"sort"
	"time"

	"roihub/models"
)

// laborModels are the improvement types whose measurements carry the labor
// hours counted in the hours/labor-cost KPIs.
var laborModels = map[models.ImprovementType]bool{
	models.TypeProductivity:    true,
	models.TypeSpeed:           true,
	models.TypeDecisionQuality: true,
}

// CalculateKPIStats folds a portfolio of projects and their indicators into
// the consolidated dashboard snapshot. Inactive indicators are ignored.
// Cached project values (roi_percentage, total_economy_annual) take
// precedence over live recomputation: they reflect what was last explicitly
// saved, and live recomputation is only the fallback.
func CalculateKPIStats(projects []models.Project, indicators []models.Indicator, overrides models.FrequencyOverrides) models.KPIStats {
	var stats models.KPIStats

	active := activeOnly(indicators)
	byProject := indicatorsByProject(active)

	for _, p := range projects {
		switch p.Status {
		case models.StatusProduction:
			stats.ProjetosProducao++
		case models.StatusCompleted:
			stats.ProjetosConcluidos++
		}
		stats.EconomiaAnual += projectAnnualEconomy(p, byProject[p.ID], overrides)
	}

	// roi_total averages only positive ROIs: a failing production project
	// still counts in projetos_producao but does not pull the mean down.
	// This asymmetry is intentional.
	var roiSum float64
	var roiCount int
	var paybackSum float64
	var paybackCount int
	for _, p := range projects {
		if p.Status != models.StatusProduction {
			continue
		}
		annual := projectAnnualEconomy(p, byProject[p.ID], overrides)
		if roiPct := projectROI(p, annual); roiPct > 0 {
			roiSum += roiPct
			roiCount++
		}
		if monthly := projectMonthlyEconomy(p, byProject[p.ID], overrides); monthly > 0 {
			paybackSum += p.ImplementationCost / monthly
			paybackCount++
		}
	}
	if roiCount > 0 {
		stats.ROITotal = roiSum / float64(roiCount)
	}
	if paybackCount > 0 {
		stats.PaybackMedio = paybackSum / float64(paybackCount)
	}

	for _, ind := range active {
		if !laborModels[ind.ImprovementType] {
			continue
		}
		stats.HorasBaselineAno += peopleHoursAnnual(ind.Baseline.People, overrides)
		stats.HorasPosIAAno += peopleHoursAnnual(ind.PostIA.People, overrides)
		stats.CustoMOBaseline += peopleCostAnnual(ind.Baseline.People, overrides)
		stats.CustoMOPosIA += peopleCostAnnual(ind.PostIA.People, overrides)
	}
	stats.HorasEconomizadasAno = math.Round(stats.HorasBaselineAno - stats.HorasPosIAAno)
	stats.EconomiaMO = stats.CustoMOBaseline - stats.CustoMOPosIA

	var custoIA float64
	for _, p := range projects {
		custoIA += p.MonthlyMaintenanceCost * 12
	}
	for _, ind := range active {
		people := ind.PostIA.People
		if len(people) == 0 {
			continue
		}
		// Per-execution AI tool costs have no frequency of their own; the
		// first listed person's frequency stands in for the tool's call
		// frequency. Known approximation.
		freq := AnnualFrequency(people[0].FrequencyQuantity, people[0].FrequencyUnit, overrides)
		for _, tool := range ind.PostIA.Tools {
			if tool.OtherCosts > 0 {
				custoIA += tool.OtherCosts * freq
			}
		}
	}
	stats.CustoIAAnual = custoIA
	stats.EconomiaLiquida = stats.EconomiaMO - custoIA

	var totalInvestment float64
	for _, p := range projects {
		totalInvestment += p.ImplementationCost
	}
	if totalInvestment > 0 {
		stats.ROICalculado = (stats.EconomiaLiquida - totalInvestment) / totalInvestment * 100
	}
	if stats.EconomiaLiquida > 0 && totalInvestment > 0 {
		stats.PaybackCalculado = totalInvestment / (stats.EconomiaLiquida / 12)
	}

	return stats
}

// EconomyHistory buckets monthly economy of production projects by the
// calendar month they went live (start date as fallback), chronologically,
// capped to the most recent 12 months. When nothing is in production yet it
// synthesizes a flat 6-month trailing window from current aggregates so the
// dashboard still has a series to draw; those points are flagged as
// approximate.
func EconomyHistory(projects []models.Project, indicators []models.Indicator, overrides models.FrequencyOverrides, now time.Time) []models.EconomyHistoryPoint {
	active := activeOnly(indicators)
	byProject := indicatorsByProject(active)

	type bucket struct {
		when         time.Time
		bruta        float64
		investimento float64
	}
	buckets := make(map[string]*bucket)

	for _, p := range projects {
		if p.Status != models.StatusProduction {
			continue
		}
		date := p.GoLiveDate
		if date == nil {
			date = p.StartDate
		}
		if date == nil {
			continue
		}
		month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		key := month.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{when: month}
			buckets[key] = b
		}
		b.bruta += projectMonthlyEconomy(p, byProject[p.ID], overrides)
		b.investimento += p.MonthlyMaintenanceCost
	}

	if len(buckets) == 0 {
		var bruta, investimento float64
		for _, p := range projects {
			bruta += projectMonthlyEconomy(p, byProject[p.ID], overrides)
			investimento += p.MonthlyMaintenanceCost
		}
		current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		points := make([]models.EconomyHistoryPoint, 0, 6)
		for i := 5; i >= 0; i-- {
			m := current.AddDate(0, -i, 0)
			points = append(points, models.EconomyHistoryPoint{
				Mes:          monthLabel(m),
				Bruta:        bruta,
				Investimento: investimento,
				Liquida:      bruta - investimento,
				Approximate:  true,
			})
		}
		return points
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].when.Before(ordered[j].when) })
	if len(ordered) > 12 {
		ordered = ordered[len(ordered)-12:]
	}

	points := make([]models.EconomyHistoryPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, models.EconomyHistoryPoint{
			Mes:          monthLabel(b.when),
			Bruta:        b.bruta,
			Investimento: b.investimento,
			Liquida:      b.bruta - b.investimento,
		})
	}
	return points
}

// typeDisplay maps each improvement type to its chart label and color.
var typeDisplay = map[models.ImprovementType]struct {
	Label string
	Color string
}{
	models.TypeProductivity:       {"Produtividade", "#3b82f6"},
	models.TypeRevenueIncrease:    {"Aumento de Receita", "#22c55e"},
	models.TypeMarginImprovement:  {"Melhoria de Margem", "#10b981"},
	models.TypeRiskReduction:      {"Redução de Risco", "#ef4444"},
	models.TypeDecisionQuality:    {"Qualidade de Decisão", "#8b5cf6"},
	models.TypeSpeed:              {"Velocidade", "#06b6d4"},
	models.TypeSatisfaction:       {"Satisfação", "#f59e0b"},
	models.TypeRelatedCosts:       {"Custos Relacionados", "#f97316"},
	models.TypeAnalyticalCapacity: {"Capacidade Analítica", "#6366f1"},
	models.TypeOther:              {"Outro", "#64748b"},
	models.TypeCustom:             {"Personalizado", "#94a3b8"},
}

// DistributionByType groups annual economy by improvement type across the
// active indicators, dropping zero and negative totals, sorted descending.
func DistributionByType(indicators []models.Indicator, overrides models.FrequencyOverrides) []models.TypeDistributionItem {
	totals := make(map[models.ImprovementType]float64)
	for _, ind := range activeOnly(indicators) {
		totals[ind.ImprovementType] += CalculateIndicatorStats(ind, overrides).AnnualEconomy
	}

	items := make([]models.TypeDistributionItem, 0, len(totals))
	for t, v := range totals {
		if v <= 0 {
			continue
		}
		display, ok := typeDisplay[t]
		if !ok {
			display.Label = string(t)
			display.Color = "#64748b"
		}
		items = append(items, models.TypeDistributionItem{
			Type:  t,
			Label: display.Label,
			Color: display.Color,
			Value: v,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Label < items[j].Label
	})
	return items
}

// --- shared helpers ---

func activeOnly(indicators []models.Indicator) []models.Indicator {
	out := make([]models.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if ind.IsActive {
			out = append(out, ind)
		}
	}
	return out
}

func indicatorsByProject(indicators []models.Indicator) map[string][]models.Indicator {
	byProject := make(map[string][]models.Indicator)
	for _, ind := range indicators {
		byProject[ind.ProjectID] = append(byProject[ind.ProjectID], ind)
	}
	return byProject
}

// projectAnnualEconomy prefers the cached total over live recomputation.
func projectAnnualEconomy(p models.Project, indicators []models.Indicator, overrides models.FrequencyOverrides) float64 {
	if p.TotalEconomyAnnual != nil {
		return *p.TotalEconomyAnnual
	}
	var total float64
	for _, ind := range indicators {
		total += CalculateIndicatorStats(ind, overrides).AnnualEconomy
	}
	return total
}

func projectMonthlyEconomy(p models.Project, indicators []models.Indicator, overrides models.FrequencyOverrides) float64 {
	if p.TotalEconomyAnnual != nil {
		return *p.TotalEconomyAnnual / 12
	}
	var total float64
	for _, ind := range indicators {
		total += CalculateIndicatorStats(ind, overrides).MonthlyEconomy
	}
	return total
}

// projectROI prefers the cached percentage; otherwise derives it from the
// annual economy against the full first-year cost.
func projectROI(p models.Project, annualEconomy float64) float64 {
	if p.ROIPercentage != nil {
		return *p.ROIPercentage
	}
	totalCost := p.ImplementationCost + p.MonthlyMaintenanceCost*12
	if totalCost == 0 {
		return 0
	}
	return (annualEconomy - totalCost) / totalCost * 100
}

func peopleHoursAnnual(people []models.PersonInvolved, overrides models.FrequencyOverrides) float64 {
	var total float64
	for _, p := range people {
		total += (p.MinutesSpent / 60) * AnnualFrequency(p.FrequencyQuantity, p.FrequencyUnit, overrides)
	}
	return total
}

func peopleCostAnnual(people []models.PersonInvolved, overrides models.FrequencyOverrides) float64 {
	var total float64
	for _, p := range people {
		total += (p.MinutesSpent / 60) * AnnualFrequency(p.FrequencyQuantity, p.FrequencyUnit, overrides) * p.HourlyRate
	}
	return total
}

var monthNamesPtBR = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

func monthLabel(t time.Time) string {
	return monthNamesPtBR[int(t.Month())-1] + "/" + t.Format("2006")
}
