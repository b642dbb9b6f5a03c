package handlers

import (
	"context"
	"log"

	"roihub/database"
	"roihub/models"
	"roihub/roi"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

// IndicatorRequest is the payload for creating or updating an indicator.
type IndicatorRequest struct {
	Name            string                 `json:"name"`
	Description     *string                `json:"description"`
	ImprovementType models.ImprovementType `json:"improvement_type"`
	Baseline        models.IndicatorData   `json:"baseline"`
	PostIA          models.IndicatorData   `json:"post_ia"`
}

// HandleListIndicators lists the active indicators of a project, each with
// its computed economy figures attached.
// GET /api/v1/projects/:projectId/indicators
func HandleListIndicators(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	if _, err := fetchProject(ctx, db, projectID, orgID); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	indicators, err := fetchActiveProjectIndicators(ctx, db, projectID)
	if err != nil {
		log.Printf("Error listing indicators for project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	overrides := loadFrequencyOverrides(ctx, db, orgID)
	type indicatorWithStats struct {
		models.Indicator
		Stats roi.IndicatorStats `json:"stats"`
	}
	data := make([]indicatorWithStats, 0, len(indicators))
	for _, ind := range indicators {
		data = append(data, indicatorWithStats{
			Indicator: ind,
			Stats:     roi.CalculateIndicatorStats(ind, overrides),
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": data})
}

// HandleCreateIndicator adds an indicator to a project and re-derives the
// project's cached ROI fields.
// POST /api/v1/projects/:projectId/indicators
func HandleCreateIndicator(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")

	if _, err := fetchProject(ctx, db, projectID, orgID); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	var req IndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.ImprovementType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, improvement_type)"})
	}

	row := db.QueryRow(ctx,
		`INSERT INTO indicators (project_id, name, description, improvement_type, baseline, post_ia)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+indicatorColumns,
		projectID, req.Name, req.Description, req.ImprovementType, req.Baseline, req.PostIA,
	)
	indicator, err := scanIndicator(row)
	if err != nil {
		log.Printf("Error creating indicator: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create indicator"})
	}

	totals, err := recalcProjectTotals(ctx, db, projectID, orgID)
	if err != nil {
		log.Printf("Error recalculating ROI after indicator create: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Indicator created but ROI recalculation failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": indicator, "project_totals": totals})
}

// HandleUpdateIndicator rewrites an indicator's measurements and re-derives
// the project's cached ROI fields.
// PUT /api/v1/projects/:projectId/indicators/:indicatorId
func HandleUpdateIndicator(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")
	indicatorID := c.Params("indicatorId")

	if _, err := fetchProject(ctx, db, projectID, orgID); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	var req IndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.ImprovementType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, improvement_type)"})
	}

	row := db.QueryRow(ctx,
		`UPDATE indicators
		 SET name = $1, description = $2, improvement_type = $3, baseline = $4, post_ia = $5, updated_at = NOW()
		 WHERE id = $6 AND project_id = $7
		 RETURNING `+indicatorColumns,
		req.Name, req.Description, req.ImprovementType, req.Baseline, req.PostIA,
		indicatorID, projectID,
	)
	indicator, err := scanIndicator(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Indicator not found"})
		}
		log.Printf("Error updating indicator %s: %v", indicatorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not update indicator"})
	}

	totals, err := recalcProjectTotals(ctx, db, projectID, orgID)
	if err != nil {
		log.Printf("Error recalculating ROI after indicator update: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Indicator updated but ROI recalculation failed"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": indicator, "project_totals": totals})
}

// HandleDeleteIndicator soft-deletes an indicator: it is marked inactive and
// drops out of every aggregation, then the project's cached ROI is re-derived.
// DELETE /api/v1/projects/:projectId/indicators/:indicatorId
func HandleDeleteIndicator(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)
	projectID := c.Params("projectId")
	indicatorID := c.Params("indicatorId")

	if _, err := fetchProject(ctx, db, projectID, orgID); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Project not found"})
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	res, err := db.Exec(ctx,
		`UPDATE indicators SET is_active = false, updated_at = NOW() WHERE id = $1 AND project_id = $2`,
		indicatorID, projectID,
	)
	if err != nil {
		log.Printf("Error deactivating indicator %s: %v", indicatorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	if res.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Indicator not found"})
	}

	totals, err := recalcProjectTotals(ctx, db, projectID, orgID)
	if err != nil {
		log.Printf("Error recalculating ROI after indicator delete: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Indicator removed but ROI recalculation failed"})
	}

	return c.JSON(fiber.Map{"status": "success", "project_totals": totals})
}
