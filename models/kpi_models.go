package models

// KPIStats is the consolidated portfolio snapshot shown on the dashboard.
// It is entirely derived from projects + indicators and never persisted.
// Field names follow the reporting vocabulary used by the product
// (economia = money saved/gained, MO = mão de obra / labor).
type KPIStats struct {
	ROITotal             float64 `json:"roi_total"`
	EconomiaAnual        float64 `json:"economia_anual"`
	HorasEconomizadasAno float64 `json:"horas_economizadas_ano"`
	ProjetosProducao     int     `json:"projetos_producao"`
	ProjetosConcluidos   int     `json:"projetos_concluidos"`
	PaybackMedio         float64 `json:"payback_medio"`

	// Decomposed labor-cost figures.
	HorasBaselineAno float64 `json:"horas_baseline_ano"`
	HorasPosIAAno    float64 `json:"horas_posia_ano"`
	CustoMOBaseline  float64 `json:"custo_mo_baseline"`
	CustoMOPosIA     float64 `json:"custo_mo_posia"`
	EconomiaMO       float64 `json:"economia_mo"`
	CustoIAAnual     float64 `json:"custo_ia_anual"`
	EconomiaLiquida  float64 `json:"economia_liquida"`
	ROICalculado     float64 `json:"roi_calculado"`
	PaybackCalculado float64 `json:"payback_calculado"`
}

// EconomyHistoryPoint is one month of the dashboard economy series.
// Approximate is set when the series was synthesized from current aggregates
// because no project has reached production yet.
type EconomyHistoryPoint struct {
	Mes          string  `json:"mes"`
	Bruta        float64 `json:"bruta"`
	Investimento float64 `json:"investimento"`
	Liquida      float64 `json:"liquida"`
	Approximate  bool    `json:"approximate,omitempty"`
}

// TypeDistributionItem is one slice of the economy-by-improvement-type chart.
type TypeDistributionItem struct {
	Type  ImprovementType `json:"type"`
	Label string          `json:"label"`
	Color string          `json:"color"`
	Value float64         `json:"value"`
}

// OrgSettings holds the per-organization configuration consumed by the
// computation engine.
type OrgSettings struct {
	OrganizationID     string             `json:"organization_id"`
	FrequencyOverrides FrequencyOverrides `json:"frequency_overrides"`
}
