package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	OrganizationName string `json:"organizationName"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// --- Enums ---

// Project lifecycle statuses.
const (
	StatusPlanning    = "planning"
	StatusDevelopment = "development"
	StatusTesting     = "testing"
	StatusProduction  = "production"
	StatusOnHold      = "on_hold"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// FrequencyUnit is how often an activity repeats (per its quantity).
type FrequencyUnit string

const (
	FreqHour    FrequencyUnit = "hour"
	FreqDay     FrequencyUnit = "day"
	FreqWeek    FrequencyUnit = "week"
	FreqMonth   FrequencyUnit = "month"
	FreqQuarter FrequencyUnit = "quarter"
	FreqYear    FrequencyUnit = "year"
)

// ImprovementType selects the economic model used to value an indicator.
// The set is closed; anything outside it is computed with the value-delta
// default model.
type ImprovementType string

const (
	TypeProductivity       ImprovementType = "productivity"
	TypeRevenueIncrease    ImprovementType = "revenue_increase"
	TypeMarginImprovement  ImprovementType = "margin_improvement"
	TypeRiskReduction      ImprovementType = "risk_reduction"
	TypeDecisionQuality    ImprovementType = "decision_quality"
	TypeSpeed              ImprovementType = "speed"
	TypeSatisfaction       ImprovementType = "satisfaction"
	TypeRelatedCosts       ImprovementType = "related_costs"
	TypeAnalyticalCapacity ImprovementType = "analytical_capacity"
	TypeOther              ImprovementType = "other"
	TypeCustom             ImprovementType = "custom"
)

// --- Core Models ---

// Organization is the tenant owning users, projects and settings.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is one AI initiative tracked by an organization.
// ROIPercentage and TotalEconomyAnnual are cached derived values; they are
// written only by the recalculation path after an indicator or cost change.
type Project struct {
	ID                     string     `json:"id"`
	OrganizationID         string     `json:"organization_id"`
	Code                   string     `json:"code"`
	Name                   string     `json:"name"`
	Description            *string    `json:"description,omitempty"`
	Status                 string     `json:"status"`
	Category               *string    `json:"category,omitempty"`
	ImplementationCost     float64    `json:"implementation_cost"`
	MonthlyMaintenanceCost float64    `json:"monthly_maintenance_cost"`
	ROIPercentage          *float64   `json:"roi_percentage,omitempty"`
	TotalEconomyAnnual     *float64   `json:"total_economy_annual,omitempty"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	GoLiveDate             *time.Time `json:"go_live_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// Indicator is one measurable dimension of improvement on a project, valued
// by comparing its baseline measurement against the post-AI one. Inactive
// indicators are soft-deleted and excluded from every aggregation.
type Indicator struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	ImprovementType ImprovementType `json:"improvement_type"`
	Baseline        IndicatorData   `json:"baseline"`
	PostIA          IndicatorData   `json:"post_ia"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PersonInvolved describes one person's share of a recurring activity.
type PersonInvolved struct {
	Role              string        `json:"role,omitempty"`
	HourlyRate        float64       `json:"hourlyRate"`
	MinutesSpent      float64       `json:"minutesSpent"`
	FrequencyQuantity float64       `json:"frequencyQuantity"`
	FrequencyUnit     FrequencyUnit `json:"frequencyUnit"`
}

// ToolCost describes one tool or service cost line. The frequency fields
// are only meaningful for per-execution costs (the related-costs model and
// the AI tool cost rollup).
type ToolCost struct {
	Name              string        `json:"name,omitempty"`
	MonthlyCost       float64       `json:"monthlyCost"`
	OtherCosts        float64       `json:"otherCosts"`
	FrequencyQuantity float64       `json:"frequencyQuantity,omitempty"`
	FrequencyUnit     FrequencyUnit `json:"frequencyUnit,omitempty"`
}

// IndicatorData is the measurement shape shared by the baseline and post-AI
// sides of an indicator. Every field is optional: a zero value means "not
// applicable to this model", never an error.
type IndicatorData struct {
	People         []PersonInvolved `json:"people,omitempty"`
	Tools          []ToolCost       `json:"tools,omitempty"`
	Value          float64          `json:"value,omitempty"`
	Revenue        float64          `json:"revenue,omitempty"`
	Cost           float64          `json:"cost,omitempty"`
	Probability    float64          `json:"probability,omitempty"`
	Impact         float64          `json:"impact,omitempty"`
	MitigationCost float64          `json:"mitigationCost,omitempty"`
	DecisionCount  float64          `json:"decisionCount,omitempty"`
	AccuracyPct    float64          `json:"accuracyPct,omitempty"`
	ErrorCost      float64          `json:"errorCost,omitempty"`
	Score          float64          `json:"score,omitempty"`
	ClientCount    float64          `json:"clientCount,omitempty"`
	ValuePerClient float64          `json:"valuePerClient,omitempty"`
	ChurnRate      float64          `json:"churnRate,omitempty"`
}

// Value implements driver.Valuer so IndicatorData can be stored in a
// PostgreSQL jsonb column.
func (d IndicatorData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading IndicatorData back from jsonb.
func (d *IndicatorData) Scan(value interface{}) error {
	if value == nil {
		*d = IndicatorData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported type for IndicatorData")
	}
}

// FrequencyOverrides maps a frequency unit to a replacement annual
// multiplier. Stored per organization and passed explicitly into the
// computation engine; nil means "use the defaults".
type FrequencyOverrides map[FrequencyUnit]float64

func (o FrequencyOverrides) Value() (driver.Value, error) {
	if o == nil {
		return json.Marshal(map[FrequencyUnit]float64{})
	}
	return json.Marshal(o)
}

func (o *FrequencyOverrides) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported type for FrequencyOverrides")
	}
}
