package handlers

import (
	"context"
	"database/sql"
	"log"

	"roihub/models"
	"roihub/roi"
	"roihub/utils"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const projectColumns = `id, organization_id, code, name, description, status, category,
	implementation_cost, monthly_maintenance_cost, roi_percentage, total_economy_annual,
	start_date, go_live_date, end_date, created_at, updated_at`

const indicatorColumns = `id, project_id, name, description, improvement_type,
	baseline, post_ia, is_active, created_at, updated_at`

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	var description, category sql.NullString
	var roiPct, economyAnnual sql.NullFloat64
	var startDate, goLiveDate, endDate sql.NullTime

	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.Code, &p.Name, &description, &p.Status, &category,
		&p.ImplementationCost, &p.MonthlyMaintenanceCost, &roiPct, &economyAnnual,
		&startDate, &goLiveDate, &endDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	p.Description = utils.NullStringToStringPtr(description)
	p.Category = utils.NullStringToStringPtr(category)
	if roiPct.Valid {
		p.ROIPercentage = &roiPct.Float64
	}
	if economyAnnual.Valid {
		p.TotalEconomyAnnual = &economyAnnual.Float64
	}
	if startDate.Valid {
		p.StartDate = &startDate.Time
	}
	if goLiveDate.Valid {
		p.GoLiveDate = &goLiveDate.Time
	}
	if endDate.Valid {
		p.EndDate = &endDate.Time
	}
	return p, nil
}

func scanIndicator(row pgx.Row) (models.Indicator, error) {
	var ind models.Indicator
	var description sql.NullString

	err := row.Scan(
		&ind.ID, &ind.ProjectID, &ind.Name, &description, &ind.ImprovementType,
		&ind.Baseline, &ind.PostIA, &ind.IsActive, &ind.CreatedAt, &ind.UpdatedAt,
	)
	if err != nil {
		return ind, err
	}

	ind.Description = utils.NullStringToStringPtr(description)
	return ind, nil
}

func fetchProject(ctx context.Context, db *pgxpool.Pool, projectID, organizationID string) (models.Project, error) {
	row := db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND organization_id = $2`,
		projectID, organizationID,
	)
	return scanProject(row)
}

func fetchOrgProjects(ctx context.Context, db *pgxpool.Pool, organizationID string) ([]models.Project, error) {
	rows, err := db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE organization_id = $1 ORDER BY created_at DESC`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			log.Printf("Error scanning project row: %v", err)
			continue
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// fetchOrgIndicators loads every indicator in the organization, active or
// not; the computation engine filters is_active itself.
func fetchOrgIndicators(ctx context.Context, db *pgxpool.Pool, organizationID string) ([]models.Indicator, error) {
	rows, err := db.Query(ctx,
		`SELECT i.id, i.project_id, i.name, i.description, i.improvement_type,
		        i.baseline, i.post_ia, i.is_active, i.created_at, i.updated_at
		 FROM indicators i
		 JOIN projects p ON p.id = i.project_id
		 WHERE p.organization_id = $1`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indicators := make([]models.Indicator, 0)
	for rows.Next() {
		ind, err := scanIndicator(rows)
		if err != nil {
			log.Printf("Error scanning indicator row: %v", err)
			continue
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

func fetchActiveProjectIndicators(ctx context.Context, db *pgxpool.Pool, projectID string) ([]models.Indicator, error) {
	rows, err := db.Query(ctx,
		`SELECT `+indicatorColumns+` FROM indicators WHERE project_id = $1 AND is_active = true ORDER BY created_at`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indicators := make([]models.Indicator, 0)
	for rows.Next() {
		ind, err := scanIndicator(rows)
		if err != nil {
			log.Printf("Error scanning indicator row: %v", err)
			continue
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

// loadFrequencyOverrides reads the organization's annual-multiplier
// overrides. Missing settings (or a read failure) fall back to the engine
// defaults by returning nil.
func loadFrequencyOverrides(ctx context.Context, db *pgxpool.Pool, organizationID string) models.FrequencyOverrides {
	var overrides models.FrequencyOverrides
	err := db.QueryRow(ctx,
		`SELECT frequency_overrides FROM org_settings WHERE organization_id = $1`,
		organizationID,
	).Scan(&overrides)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Printf("Error loading frequency overrides for org %s: %v", organizationID, err)
		}
		return nil
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

// recalcProjectTotals re-derives a project's cached roi_percentage and
// total_economy_annual from its active indicators and persists them. It is
// the sole writer of those fields and must run after every indicator
// mutation and every project cost change.
func recalcProjectTotals(ctx context.Context, db *pgxpool.Pool, projectID, organizationID string) (roi.ProjectTotals, error) {
	project, err := fetchProject(ctx, db, projectID, organizationID)
	if err != nil {
		return roi.ProjectTotals{}, err
	}

	indicators, err := fetchActiveProjectIndicators(ctx, db, projectID)
	if err != nil {
		return roi.ProjectTotals{}, err
	}

	overrides := loadFrequencyOverrides(ctx, db, organizationID)
	totals := roi.RecalculateProject(project, indicators, overrides)

	_, err = db.Exec(ctx,
		`UPDATE projects SET roi_percentage = $1, total_economy_annual = $2, updated_at = NOW() WHERE id = $3`,
		totals.ROIPercentage, totals.TotalEconomyAnnual, projectID,
	)
	return totals, err
}
