package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"roihub/database"
	"roihub/models"
	"roihub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

// ProjectRequest is the payload for creating or updating a project.
type ProjectRequest struct {
	Name                   string     `json:"name"`
	Description            *string    `json:"description"`
	Status                 string     `json:"status"`
	Category               *string    `json:"category"`
	ImplementationCost     float64    `json:"implementation_cost"`
	MonthlyMaintenanceCost float64    `json:"monthly_maintenance_cost"`
	StartDate              *time.Time `json:"start_date"`
	GoLiveDate             *time.Time `json:"go_live_date"`
	EndDate                *time.Time `json:"end_date"`
}

var validStatuses = map[string]bool{
	models.StatusPlanning:    true,
	models.StatusDevelopment: true,
	models.StatusTesting:     true,
	models.StatusProduction:  true,
	models.StatusOnHold:      true,
	models.StatusCompleted:   true,
	models.StatusCancelled:   true,
}

// HandleListProjects lists the organization's projects, paginated.
// GET /api/v1/projects?page=1&pageSize=10&status=production
func HandleListProjects(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	status := c.Query("status")

	countQuery := `SELECT COUNT(*) FROM projects WHERE organization_id = $1`
	listQuery := `SELECT ` + projectColumns + ` FROM projects WHERE organization_id = $1`
	args := []interface{}{orgID}
	if status != "" {
		countQuery += " AND status = $2"
		listQuery += " AND status = $2"
		args = append(args, status)
	}

	var total int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	pagination := utils.CreatePagination(total, page, pageSize)
	listQuery += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, pagination.PageSize, (pagination.CurrentPage-1)*pagination.PageSize)

	rows, err := db.Query(ctx, listQuery, args...)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
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

	return c.JSON(fiber.Map{"status": "success", "data": projects, "pagination": pagination})
}

// HandleGetProject returns one project with its indicators.
// GET /api/v1/projects/:projectId
func HandleGetProject(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	project, err := fetchProject(ctx, db, projectID, orgID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	indicators, err := fetchActiveProjectIndicators(ctx, db, projectID)
	if err != nil {
		log.Printf("Error fetching indicators for project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"project": project, "indicators": indicators}})
}

// HandleCreateProject creates a project with a generated PRJ code.
// POST /api/v1/projects
func HandleCreateProject(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Project name is required"})
	}
	if req.Status == "" {
		req.Status = models.StatusPlanning
	}
	if !validStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid project status"})
	}
	if req.ImplementationCost < 0 || req.MonthlyMaintenanceCost < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Costs must be non-negative"})
	}

	code, err := utils.GenerateProjectCode(ctx, db, orgID)
	if err != nil {
		log.Printf("Error generating project code: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not generate project code"})
	}

	row := db.QueryRow(ctx,
		`INSERT INTO projects (organization_id, code, name, description, status, category,
		                       implementation_cost, monthly_maintenance_cost, start_date, go_live_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+projectColumns,
		orgID, code, req.Name, req.Description, req.Status, req.Category,
		req.ImplementationCost, req.MonthlyMaintenanceCost, req.StartDate, req.GoLiveDate, req.EndDate,
	)
	project, err := scanProject(row)
	if err != nil {
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create project"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": project})
}

// HandleUpdateProject updates a project and re-derives its cached ROI fields,
// since a cost or status change invalidates them.
// PUT /api/v1/projects/:projectId
func HandleUpdateProject(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Project name is required"})
	}
	if !validStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid project status"})
	}
	if req.ImplementationCost < 0 || req.MonthlyMaintenanceCost < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Costs must be non-negative"})
	}

	res, err := db.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, status = $3, category = $4,
		     implementation_cost = $5, monthly_maintenance_cost = $6,
		     start_date = $7, go_live_date = $8, end_date = $9, updated_at = NOW()
		 WHERE id = $10 AND organization_id = $11`,
		req.Name, req.Description, req.Status, req.Category,
		req.ImplementationCost, req.MonthlyMaintenanceCost,
		req.StartDate, req.GoLiveDate, req.EndDate,
		projectID, orgID,
	)
	if err != nil {
		log.Printf("Error updating project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	if res.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
	}

	if _, err := recalcProjectTotals(ctx, db, projectID, orgID); err != nil {
		log.Printf("Error recalculating ROI for project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not recalculate project ROI"})
	}

	project, err := fetchProject(ctx, db, projectID, orgID)
	if err != nil {
		log.Printf("Error re-fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": project})
}

// HandleDeleteProject removes a project; its indicators go with it
// (ON DELETE CASCADE at the store level).
// DELETE /api/v1/projects/:projectId
func HandleDeleteProject(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	res, err := db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND organization_id = $2`,
		projectID, orgID,
	)
	if err != nil {
		log.Printf("Error deleting project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	if res.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// HandleRecalculateProject forces a recomputation of the cached ROI fields.
// POST /api/v1/projects/:projectId/recalculate
func HandleRecalculateProject(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	totals, err := recalcProjectTotals(ctx, db, projectID, orgID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error recalculating ROI for project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not recalculate project ROI"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": totals})
}
